package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/paperatlas/paperatlas/internal/paper"
)

const selectPaperFields = `id, project_id, title, abstract, authors, year,
	doi, arxiv_id, embedding_json, cluster_id`

// AddPaper inserts a paper into a project and returns it with its assigned id.
func (d *DB) AddPaper(p paper.Paper) (*paper.Paper, error) {
	embeddingJSON, err := encodeEmbedding(p.Embedding)
	if err != nil {
		return nil, err
	}

	res, err := d.db.Exec(`
		INSERT INTO papers (project_id, title, abstract, authors, year, doi, arxiv_id, embedding_json, cluster_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ProjectID, p.Title, nullableString(p.Abstract), nullableString(p.Authors),
		nullableInt(p.Year), nullableString(p.DOI), nullableString(p.ArXivID),
		embeddingJSON, nullableClusterID(p.ClusterID))
	if err != nil {
		return nil, fmt.Errorf("inserting paper %q: %w", p.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading paper id: %w", err)
	}
	p.ID = id
	return &p, nil
}

// GetPaper retrieves a single paper by id.
func (d *DB) GetPaper(id int64) (*paper.Paper, error) {
	row := d.db.QueryRow(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE id = ?
	`, id)

	var f paperScanFields
	if err := row.Scan(f.targets()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f.toPaper()
}

// ListPapers returns all papers in a project, oldest first.
func (d *DB) ListPapers(projectID int64) ([]paper.Paper, error) {
	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE project_id = ?
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []paper.Paper
	for rows.Next() {
		var f paperScanFields
		if err := rows.Scan(f.targets()...); err != nil {
			return nil, err
		}
		p, err := f.toPaper()
		if err != nil {
			return nil, err
		}
		papers = append(papers, *p)
	}
	return papers, rows.Err()
}

// DeletePaper removes a paper, verifying it belongs to the given project.
func (d *DB) DeletePaper(id, projectID int64) error {
	res, err := d.db.Exec(`DELETE FROM papers WHERE id = ? AND project_id = ?`, id, projectID)
	if err != nil {
		return fmt.Errorf("deleting paper %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEmbedding stores a paper's embedding vector. A nil vector clears it.
func (d *DB) UpdateEmbedding(id int64, vec []float32) error {
	embeddingJSON, err := encodeEmbedding(vec)
	if err != nil {
		return err
	}
	res, err := d.db.Exec(`UPDATE papers SET embedding_json = ? WHERE id = ?`, embeddingJSON, id)
	if err != nil {
		return fmt.Errorf("updating embedding for paper %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateClusterID assigns a paper to a cluster. A nil id clears the
// assignment.
func (d *DB) UpdateClusterID(id int64, clusterID *int) error {
	res, err := d.db.Exec(`UPDATE papers SET cluster_id = ? WHERE id = ?`, nullableClusterID(clusterID), id)
	if err != nil {
		return fmt.Errorf("updating cluster for paper %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearClusters removes every cluster assignment in a project.
func (d *DB) ClearClusters(projectID int64) error {
	_, err := d.db.Exec(`UPDATE papers SET cluster_id = NULL WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("clearing clusters for project %d: %w", projectID, err)
	}
	return nil
}

type paperScanFields struct {
	id, projectID int64
	title         string
	abstract      sql.NullString
	authors       sql.NullString
	year          sql.NullInt64
	doi           sql.NullString
	arxivID       sql.NullString
	embeddingJSON sql.NullString
	clusterID     sql.NullInt64
}

func (f *paperScanFields) targets() []any {
	return []any{
		&f.id, &f.projectID, &f.title, &f.abstract, &f.authors,
		&f.year, &f.doi, &f.arxivID, &f.embeddingJSON, &f.clusterID,
	}
}

func (f *paperScanFields) toPaper() (*paper.Paper, error) {
	p := paper.Paper{
		ID:        f.id,
		ProjectID: f.projectID,
		Title:     f.title,
		Abstract:  f.abstract.String,
		Authors:   f.authors.String,
		Year:      int(f.year.Int64),
		DOI:       f.doi.String,
		ArXivID:   f.arxivID.String,
	}
	if f.embeddingJSON.Valid && f.embeddingJSON.String != "" {
		if err := json.Unmarshal([]byte(f.embeddingJSON.String), &p.Embedding); err != nil {
			return nil, fmt.Errorf("decoding embedding for paper %d: %w", f.id, err)
		}
	}
	if f.clusterID.Valid {
		c := int(f.clusterID.Int64)
		p.ClusterID = &c
	}
	return &p, nil
}

// encodeEmbedding serializes an embedding as JSON text, or NULL when absent.
func encodeEmbedding(vec []float32) (sql.NullString, error) {
	if len(vec) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding embedding: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullableClusterID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
