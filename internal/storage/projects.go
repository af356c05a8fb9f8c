package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/paperatlas/paperatlas/internal/paper"
)

// CreateProject inserts a new project for an owner. Project names are unique
// per owner.
func (d *DB) CreateProject(owner, name, description string) (*paper.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}

	now := time.Now().Unix()
	res, err := d.db.Exec(`
		INSERT INTO projects (owner, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`, owner, name, nullableString(description), now)
	if err != nil {
		return nil, fmt.Errorf("inserting project %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project id: %w", err)
	}

	return &paper.Project{
		ID:          id,
		Owner:       owner,
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}, nil
}

// GetProject retrieves a project by id, scoped to its owner. Asking for
// another owner's project behaves exactly like a missing one.
func (d *DB) GetProject(id int64, owner string) (*paper.Project, error) {
	row := d.db.QueryRow(`
		SELECT id, owner, name, description, created_at
		FROM projects
		WHERE id = ? AND owner = ?
	`, id, owner)

	return scanProject(row)
}

// ListProjects returns all projects belonging to an owner, oldest first.
func (d *DB) ListProjects(owner string) ([]paper.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, owner, name, description, created_at
		FROM projects
		WHERE owner = ?
		ORDER BY id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []paper.Project
	for rows.Next() {
		var f projectScanFields
		if err := rows.Scan(&f.id, &f.owner, &f.name, &f.description, &f.createdAt); err != nil {
			return nil, err
		}
		projects = append(projects, f.toProject())
	}
	return projects, rows.Err()
}

// DeleteProject removes a project and, via the schema's cascade, all of its
// papers.
func (d *DB) DeleteProject(id int64, owner string) error {
	res, err := d.db.Exec(`DELETE FROM projects WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
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

type projectScanFields struct {
	id          int64
	owner, name string
	description sql.NullString
	createdAt   int64
}

func (f *projectScanFields) toProject() paper.Project {
	return paper.Project{
		ID:          f.id,
		Owner:       f.owner,
		Name:        f.name,
		Description: f.description.String,
		CreatedAt:   f.createdAt,
	}
}

func scanProject(row *sql.Row) (*paper.Project, error) {
	var f projectScanFields
	err := row.Scan(&f.id, &f.owner, &f.name, &f.description, &f.createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p := f.toProject()
	return &p, nil
}
