package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/repository"
)

var projectColumns = []string{
	"id", "title", "description", "technologies", "price",
	"created_at", "updated_at", "author_id", "author_name", "author_email",
}

func newTestProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewProjectRepository(db), mock
}

func TestProjectRepository_List(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM projects p JOIN users u ON u.id = p.author_id ORDER BY p.created_at DESC, p.id`).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p2", "Voting System", "blockchain voting", []byte(`["Solidity","Web3.js"]`), 1000.0, now, now, "u2", "John", "john@example.com").
			AddRow("p1", "AI Task Manager", "tasks", []byte(`["React"]`), 500.0, now, now, "u1", "Jane", "jane@example.com"))
	mock.ExpectQuery(`SELECT project_id, filename, url FROM attachments WHERE project_id IN`).
		WithArgs("p2", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "filename", "url"}).
			AddRow("p1", "demo.mp4", "https://cdn/demo.mp4").
			AddRow("p2", "whitepaper.pdf", "https://cdn/whitepaper.pdf").
			AddRow("p2", "prototype.zip", "https://cdn/prototype.zip"))

	got, err := repo.List(context.Background(), repository.ProjectScope{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, []string{"Solidity", "Web3.js"}, got[0].Technologies)
	assert.Equal(t, entity.Author{ID: "u2", Name: "John", Email: "john@example.com"}, got[0].Author)
	assert.Equal(t, []entity.Attachment{
		{Filename: "whitepaper.pdf", URL: "https://cdn/whitepaper.pdf"},
		{Filename: "prototype.zip", URL: "https://cdn/prototype.zip"},
	}, got[0].Attachments)
	assert.Equal(t, 500.0, got[1].Price)
	assert.Len(t, got[1].Attachments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_List_ScopedToAuthor(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery(`FROM projects p JOIN users u ON u.id = p.author_id WHERE p.author_id = `).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(projectColumns))

	got, err := repo.List(context.Background(), repository.ProjectScope{AuthorID: "u1"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_List_QueryError(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery(`FROM projects p`).WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), repository.ProjectScope{})
	assert.ErrorContains(t, err, "list projects")
}

func TestProjectRepository_List_BadTechnologies(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM projects p`).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p1", "t", "d", []byte(`{not json`), 1.0, now, now, "u1", "n", "e"))

	_, err := repo.List(context.Background(), repository.ProjectScope{})
	assert.ErrorContains(t, err, "decode technologies")
}

func TestProjectRepository_GetByID(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM projects p JOIN users u ON u.id = p.author_id WHERE p.id = `).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p1", "AI Task Manager", "tasks", []byte(`[]`), 500.0, now, now, "u1", "Jane", "jane@example.com"))
	mock.ExpectQuery(`FROM attachments`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "filename", "url"}))

	got, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "AI Task Manager", got.Title)
	assert.Equal(t, "u1", got.Author.ID)
	assert.NotNil(t, got.Attachments)
	assert.Empty(t, got.Technologies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectQuery(`FROM projects p`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepository_Create(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	now := time.Now()
	p := &entity.Project{
		Title:        "AI Task Manager",
		Description:  "tasks",
		Technologies: []string{"React", "Node.js"},
		Price:        500,
		Author:       entity.Author{ID: "u1"},
		Attachments: []entity.Attachment{
			{Filename: "documentation.pdf", URL: "https://cdn/documentation.pdf"},
			{Filename: "demo.mp4", URL: "https://cdn/demo.mp4"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs(sqlmock.AnyArg(), "AI Task Manager", "tasks", []byte(`["React","Node.js"]`), 500.0, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO attachments`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), 0, "documentation.pdf", "https://cdn/documentation.pdf",
			sqlmock.AnyArg(), sqlmock.AnyArg(), 1, "demo.mp4", "https://cdn/demo.mp4",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Create_WithoutAttachments(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	now := time.Now()
	p := &entity.Project{ID: "fixed", Title: "t", Description: "d", Author: entity.Author{ID: "u1"}}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("fixed", "t", "d", []byte(`[]`), 0.0, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, "fixed", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Create_AttachmentFailureRollsBack(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	now := time.Now()
	p := &entity.Project{
		Title: "t", Description: "d", Author: entity.Author{ID: "u1"},
		Attachments: []entity.Attachment{{Filename: "a", URL: "b"}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO attachments`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), p)
	assert.ErrorContains(t, err, "insert attachments")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Update(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	p := &entity.Project{ID: "p1", Title: "t", Description: "d", Technologies: []string{"Go"}, Price: 10, Author: entity.Author{ID: "u1"}}

	mock.ExpectExec(`UPDATE projects`).
		WithArgs("t", "d", []byte(`["Go"]`), 10.0, sqlmock.AnyArg(), "p1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), p))
	assert.False(t, p.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Update_NoRow(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	p := &entity.Project{ID: "p1", Author: entity.Author{ID: "u2"}}

	mock.ExpectExec(`UPDATE projects`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(context.Background(), p), ErrNotFound)
}

func TestProjectRepository_Delete(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1 AND author_id = \$2`).
		WithArgs("p1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "p1", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Delete_NoRow(t *testing.T) {
	repo, mock := newTestProjectRepo(t)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs("p1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "p1", "u2"), ErrNotFound)
}

func TestProjectRepository_MalformedIDIsNotFound(t *testing.T) {
	repo, mock := newTestProjectRepo(t)
	badUUID := pgError(pgerrcode.InvalidTextRepresentation)

	mock.ExpectQuery(`FROM projects p`).
		WithArgs("not-a-uuid").
		WillReturnError(badUUID)
	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(`UPDATE projects`).WillReturnError(badUUID)
	err = repo.Update(context.Background(), &entity.Project{ID: "not-a-uuid", Author: entity.Author{ID: "u1"}})
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs("not-a-uuid", "u1").
		WillReturnError(badUUID)
	assert.ErrorIs(t, repo.Delete(context.Background(), "not-a-uuid", "u1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
