package layout

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// projectPCA reduces the embeddings to their top principal components via a
// thin SVD of the mean-centered matrix. At most two components are kept;
// when only one is available the second axis is zero. Returns false when the
// input is unusable or the factorization does not converge.
func projectPCA(vecs [][]float32) ([]Point, bool) {
	n := len(vecs)
	if n == 0 {
		return nil, false
	}
	dim := len(vecs[0])
	if dim == 0 {
		return nil, false
	}
	for _, v := range vecs {
		if len(v) != dim {
			return nil, false
		}
	}

	data := make([]float64, n*dim)
	for i, v := range vecs {
		for j, val := range v {
			data[i*dim+j] = float64(val)
		}
	}
	x := mat.NewDense(n, dim, data)

	for j := 0; j < dim; j++ {
		col := mat.Col(nil, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, false
	}

	var v mat.Dense
	svd.VTo(&v)
	_, vc := v.Dims()

	components := 2
	if n-1 < components {
		components = n - 1
	}
	if dim < components {
		components = dim
	}
	if vc < components {
		components = vc
	}
	if components < 1 {
		return nil, false
	}

	pc := mat.NewDense(dim, components, nil)
	for i := 0; i < dim; i++ {
		for c := 0; c < components; c++ {
			pc.Set(i, c, v.At(i, c))
		}
	}

	var projected mat.Dense
	projected.Mul(x, pc)

	pts := make([]Point, n)
	for i := range pts {
		pts[i].X = projected.At(i, 0)
		if components > 1 {
			pts[i].Y = projected.At(i, 1)
		}
	}
	return pts, true
}
