package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func selectProjects() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.title", "p.description", "p.technologies", "p.price::float8",
		"p.created_at", "p.updated_at", "u.id", "u.name", "u.email",
	).
		From("projects p").
		Join("users u ON u.id = p.author_id")
}

// List returns projects newest first, with attachments, optionally limited to one author.
func (r *ProjectRepository) List(ctx context.Context, scope repository.ProjectScope) ([]entity.Project, error) {
	q := selectProjects().OrderBy("p.created_at DESC", "p.id")
	if scope.AuthorID != "" {
		q = q.Where(sq.Eq{"p.author_id": scope.AuthorID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	if err := r.attachAll(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	query, args, err := selectProjects().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	p, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	one := []entity.Project{p}
	if err := r.attachAll(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// Create inserts the project and its attachments in a single transaction.
func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	techs, err := json.Marshal(nonNil(p.Technologies))
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO projects (id, title, description, technologies, price, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Description, techs, p.Price, p.Author.ID)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	if len(p.Attachments) > 0 {
		ins := psql.Insert("attachments").Columns("id", "project_id", "position", "filename", "url")
		for i, a := range p.Attachments {
			ins = ins.Values(uuid.NewString(), p.ID, i, a.Filename, a.URL)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build attachments insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert attachments: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of a project owned by p.Author.ID.
func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	techs, err := json.Marshal(nonNil(p.Technologies))
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET title = $1, description = $2, technologies = $3, price = $4, updated_at = $5
		WHERE id = $6 AND author_id = $7
	`, p.Title, p.Description, techs, p.Price, p.UpdatedAt, p.ID, p.Author.ID)
	if isInvalidID(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes a project owned by authorID; attachments cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id, authorID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND author_id = $2`, id, authorID)
	if isInvalidID(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectOneRow(res)
}

func (r *ProjectRepository) attachAll(ctx context.Context, projects []entity.Project) error {
	if len(projects) == 0 {
		return nil
	}
	idx := make(map[string]int, len(projects))
	ids := make([]string, 0, len(projects))
	for i := range projects {
		projects[i].Attachments = []entity.Attachment{}
		idx[projects[i].ID] = i
		ids = append(ids, projects[i].ID)
	}

	query, args, err := psql.Select("project_id", "filename", "url").
		From("attachments").
		Where(sq.Eq{"project_id": ids}).
		OrderBy("project_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build attachments query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list attachments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var projectID string
		var a entity.Attachment
		if err := rows.Scan(&projectID, &a.Filename, &a.URL); err != nil {
			return fmt.Errorf("scan attachment: %w", err)
		}
		if i, ok := idx[projectID]; ok {
			projects[i].Attachments = append(projects[i].Attachments, a)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (entity.Project, error) {
	var p entity.Project
	var techs []byte
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &techs, &p.Price,
		&p.CreatedAt, &p.UpdatedAt, &p.Author.ID, &p.Author.Name, &p.Author.Email); err != nil {
		return entity.Project{}, err
	}
	p.Technologies = []string{}
	if len(techs) > 0 {
		if err := json.Unmarshal(techs, &p.Technologies); err != nil {
			return entity.Project{}, fmt.Errorf("decode technologies of %s: %w", p.ID, err)
		}
	}
	return p, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
