package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/paperatlas/paperatlas/internal/paper"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProjectLifecycle(t *testing.T) {
	db := openTestDB(t)

	p, err := db.CreateProject("alice", "survey", "graph learning papers")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected non-zero project id")
	}

	got, err := db.GetProject(p.ID, "alice")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != "survey" || got.Description != "graph learning papers" || got.Owner != "alice" {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt == 0 {
		t.Error("expected created_at to be set")
	}

	if _, err := db.GetProject(p.ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-owner lookup: err = %v, want ErrNotFound", err)
	}

	if err := db.DeleteProject(p.ID, "alice"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := db.GetProject(p.ID, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: err = %v, want ErrNotFound", err)
	}
	if err := db.DeleteProject(p.ID, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.CreateProject("alice", "  ", ""); err == nil {
		t.Error("expected error for blank name")
	}

	if _, err := db.CreateProject("alice", "survey", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := db.CreateProject("alice", "survey", ""); err == nil {
		t.Error("expected error for duplicate name per owner")
	}
	// Same name is fine under a different owner.
	if _, err := db.CreateProject("bob", "survey", ""); err != nil {
		t.Errorf("CreateProject for second owner: %v", err)
	}
}

func TestListProjects_ScopedToOwner(t *testing.T) {
	db := openTestDB(t)

	db.CreateProject("alice", "one", "")
	db.CreateProject("alice", "two", "")
	db.CreateProject("bob", "three", "")

	projects, err := db.ListProjects("alice")
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	if projects[0].Name != "one" || projects[1].Name != "two" {
		t.Errorf("unexpected order: %+v", projects)
	}
}

func TestPaperLifecycle(t *testing.T) {
	db := openTestDB(t)
	proj, err := db.CreateProject("alice", "survey", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	added, err := db.AddPaper(paper.Paper{
		ProjectID: proj.ID,
		Title:     "Attention Is All You Need",
		Abstract:  "The dominant sequence transduction models...",
		Authors:   "Vaswani et al.",
		Year:      2017,
		ArXivID:   "1706.03762",
	})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}
	if added.ID == 0 {
		t.Error("expected non-zero paper id")
	}

	got, err := db.GetPaper(added.ID)
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}
	if got.Title != added.Title || got.Year != 2017 || got.ArXivID != "1706.03762" {
		t.Errorf("got %+v", got)
	}
	if got.HasEmbedding() {
		t.Error("new paper should have no embedding")
	}
	if got.ClusterID != nil {
		t.Error("new paper should have no cluster")
	}

	if err := db.DeletePaper(added.ID, proj.ID); err != nil {
		t.Fatalf("DeletePaper: %v", err)
	}
	if _, err := db.GetPaper(added.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: err = %v, want ErrNotFound", err)
	}
}

func TestDeletePaper_WrongProject(t *testing.T) {
	db := openTestDB(t)
	p1, _ := db.CreateProject("alice", "one", "")
	p2, _ := db.CreateProject("alice", "two", "")

	added, err := db.AddPaper(paper.Paper{ProjectID: p1.ID, Title: "A"})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}
	if err := db.DeletePaper(added.ID, p2.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEmbeddingRoundTrip(t *testing.T) {
	db := openTestDB(t)
	proj, _ := db.CreateProject("alice", "survey", "")
	added, err := db.AddPaper(paper.Paper{ProjectID: proj.ID, Title: "A"})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}

	vec := []float32{0.25, -0.5, 0.125}
	if err := db.UpdateEmbedding(added.ID, vec); err != nil {
		t.Fatalf("UpdateEmbedding: %v", err)
	}

	got, err := db.GetPaper(added.ID)
	if err != nil {
		t.Fatalf("GetPaper: %v", err)
	}
	if !reflect.DeepEqual(got.Embedding, vec) {
		t.Errorf("embedding = %v, want %v", got.Embedding, vec)
	}

	if err := db.UpdateEmbedding(added.ID, nil); err != nil {
		t.Fatalf("UpdateEmbedding(nil): %v", err)
	}
	got, _ = db.GetPaper(added.ID)
	if got.HasEmbedding() {
		t.Error("embedding should be cleared")
	}

	if err := db.UpdateEmbedding(9999, vec); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing paper: err = %v, want ErrNotFound", err)
	}
}

func TestClusterAssignments(t *testing.T) {
	db := openTestDB(t)
	proj, _ := db.CreateProject("alice", "survey", "")

	var ids []int64
	for _, title := range []string{"A", "B", "C"} {
		p, err := db.AddPaper(paper.Paper{ProjectID: proj.ID, Title: title})
		if err != nil {
			t.Fatalf("AddPaper: %v", err)
		}
		ids = append(ids, p.ID)
	}

	zero, one := 0, 1
	db.UpdateClusterID(ids[0], &zero)
	db.UpdateClusterID(ids[1], &zero)
	db.UpdateClusterID(ids[2], &one)

	papers, err := db.ListPapers(proj.ID)
	if err != nil {
		t.Fatalf("ListPapers: %v", err)
	}
	if *papers[0].ClusterID != 0 || *papers[1].ClusterID != 0 || *papers[2].ClusterID != 1 {
		t.Errorf("unexpected assignments: %+v", papers)
	}

	// Cluster 0 is a legitimate stored value, distinct from NULL.
	if papers[0].ClusterID == nil {
		t.Error("cluster 0 must round-trip as assigned")
	}

	if err := db.ClearClusters(proj.ID); err != nil {
		t.Fatalf("ClearClusters: %v", err)
	}
	papers, _ = db.ListPapers(proj.ID)
	for _, p := range papers {
		if p.ClusterID != nil {
			t.Errorf("paper %d still clustered after clear", p.ID)
		}
	}
}

func TestDeleteProject_CascadesPapers(t *testing.T) {
	db := openTestDB(t)
	proj, _ := db.CreateProject("alice", "survey", "")
	added, err := db.AddPaper(paper.Paper{ProjectID: proj.ID, Title: "A"})
	if err != nil {
		t.Fatalf("AddPaper: %v", err)
	}

	if err := db.DeleteProject(proj.ID, "alice"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := db.GetPaper(added.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("paper survived project deletion: err = %v", err)
	}
}
