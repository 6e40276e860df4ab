package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
	"github.com/oksasatya/go-project-marketplace/internal/domain/listing"
	"github.com/oksasatya/go-project-marketplace/internal/domain/policy"
	repo "github.com/oksasatya/go-project-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-project-marketplace/pkg/validation"
)

const searchSize = 100

var validate = validation.New()

// ProjectService owns the project listing and its mutations. Index is optional.
type ProjectService struct {
	Repo   repo.ProjectRepository
	Index  gateway.ProjectIndex
	Logger *logrus.Logger
}

func NewProjectService(r repo.ProjectRepository, index gateway.ProjectIndex, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Repo: r, Index: index, Logger: logger}
}

type AttachmentInput struct {
	Filename string `json:"filename" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url"`
}

// ProjectInput is the body of a project creation request.
type ProjectInput struct {
	Title        string            `json:"title" validate:"required,max=100"`
	Description  string            `json:"description" validate:"required,max=1000"`
	Technologies []string          `json:"technologies" validate:"min=1,dive,techtag"`
	Price        float64           `json:"price" validate:"gte=0"`
	Attachments  []AttachmentInput `json:"attachments" validate:"dive"`
}

// ProjectPatch carries the fields of a partial update; nil means unchanged.
type ProjectPatch struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
	Price        *float64 `json:"price"`
}

// editableFields are the project fields a patch may change besides the price.
type editableFields struct {
	Title        string
	Description  string
	Technologies []string
}

func (pt ProjectPatch) fields() editableFields {
	var f editableFields
	if pt.Title != nil {
		f.Title = strings.TrimSpace(*pt.Title)
	}
	if pt.Description != nil {
		f.Description = strings.TrimSpace(*pt.Description)
	}
	f.Technologies = cleanTechnologies(pt.Technologies)
	return f
}

func cleanTechnologies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validateProject(in ProjectInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// List returns the projects in scope that satisfy c, newest first.
func (s *ProjectService) List(ctx context.Context, scope repo.ProjectScope, c listing.Criteria) ([]entity.Project, error) {
	all, err := s.Repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	return listing.Filter(all, c), nil
}

// Search ranks projects by full-text relevance to q and applies the price
// bounds of c. Without an index, or when it fails, q is used as a keyword.
func (s *ProjectService) Search(ctx context.Context, q string, c listing.Criteria) ([]entity.Project, error) {
	q = strings.TrimSpace(q)
	fallback := c
	fallback.Keyword = q
	if s.Index == nil || q == "" {
		return s.List(ctx, repo.ProjectScope{}, fallback)
	}

	hits, err := s.Index.Search(ctx, q, searchSize)
	if err != nil {
		s.Logger.WithError(err).WithField("q", q).Warn("search index unavailable, falling back to listing")
		return s.List(ctx, repo.ProjectScope{}, fallback)
	}
	c.Keyword = ""
	return listing.Filter(hits, c), nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, author entity.Author, in ProjectInput) (*entity.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Technologies = cleanTechnologies(in.Technologies)
	if err := validateProject(in); err != nil {
		return nil, err
	}

	p := &entity.Project{
		Title:        in.Title,
		Description:  in.Description,
		Technologies: in.Technologies,
		Price:        in.Price,
		Author:       author,
		Attachments:  make([]entity.Attachment, 0, len(in.Attachments)),
	}
	for _, a := range in.Attachments {
		p.Attachments = append(p.Attachments, entity.Attachment{Filename: a.Filename, URL: a.URL})
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	projectsCreated.Add(1)
	s.reindex(ctx, *p)
	return p, nil
}

// Update applies patch to a project owned by actingUserID.
func (s *ProjectService) Update(ctx context.Context, actingUserID, id string, patch ProjectPatch) (*entity.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(actingUserID, *p) {
		return nil, ErrForbidden
	}

	cur := editableFields{Title: p.Title, Description: p.Description, Technologies: p.Technologies}
	src := patch.fields()
	if err := mergo.Merge(&cur, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge project: %w", err)
	}
	// An explicitly blanked field must reach validation instead of being
	// skipped by the merge.
	if patch.Title != nil && src.Title == "" {
		cur.Title = ""
	}
	if patch.Description != nil && src.Description == "" {
		cur.Description = ""
	}
	if patch.Technologies != nil && len(src.Technologies) == 0 {
		cur.Technologies = nil
	}
	p.Title, p.Description, p.Technologies = cur.Title, cur.Description, cur.Technologies
	if patch.Price != nil {
		p.Price = *patch.Price
	}

	if err := validateProject(ProjectInput{
		Title:        p.Title,
		Description:  p.Description,
		Technologies: p.Technologies,
		Price:        p.Price,
	}); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	s.reindex(ctx, *p)
	return p, nil
}

// Delete removes a project owned by actingUserID.
func (s *ProjectService) Delete(ctx context.Context, actingUserID, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(actingUserID, *p) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, p.ID, actingUserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	projectsDeleted.Add(1)

	if s.Index != nil {
		if err := s.Index.Remove(ctx, p.ID); err != nil {
			s.Logger.WithError(err).WithField("project_id", p.ID).Warn("remove from search index failed")
		}
	}
	return nil
}

// Technologies lists every technology tag in use, in first-seen order.
func (s *ProjectService) Technologies(ctx context.Context) ([]string, error) {
	all, err := s.Repo.List(ctx, repo.ProjectScope{})
	if err != nil {
		return nil, err
	}
	return listing.Technologies(all), nil
}

// Reindex pushes every stored project into the search index and returns how
// many were indexed. Rows written outside Create and Update (seed data, an
// index that was down) only become searchable this way.
func (s *ProjectService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	all, err := s.Repo.List(ctx, repo.ProjectScope{})
	if err != nil {
		return 0, err
	}
	var errs []error
	n := 0
	for _, p := range all {
		if err := s.Index.Index(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", p.ID, err))
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

func (s *ProjectService) reindex(ctx context.Context, p entity.Project) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.Logger.WithError(err).WithField("project_id", p.ID).Warn("search index update failed")
	}
}
