// Package services contains the business logic for pinframe-engine.
// Services validate mutations, commit them through the repositories, and
// hand committed entities to the realtime broadcaster. The store is the
// single source of truth: a broadcast never fires for a mutation whose
// persist did not succeed, and a failed broadcast never fails the mutation.
package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pinframe-inc/pinframe-engine/pkg/apperrors"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
	"github.com/pinframe-inc/pinframe-engine/pkg/repositories"
)

// Limits on project creation input. The title limit counts characters, not
// bytes, matching the VARCHAR(200) column.
const (
	MaxTitleLength = 200
	MaxImageSide   = 20000
)

// ProjectService defines the interface for project operations.
type ProjectService interface {
	// Create validates and persists a new project.
	Create(ctx context.Context, title, imageURL string, width, height int) (*models.Project, error)
	// List returns all projects in summary form, newest first.
	List(ctx context.Context) ([]models.ProjectSummary, error)
	// Get returns a project with all pins and their comments attached.
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// Delete removes a project and, by cascade, its pins and comments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// projectService implements ProjectService.
type projectService struct {
	repo repositories.ProjectRepository
}

// NewProjectService creates a new project service.
func NewProjectService(repo repositories.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) Create(ctx context.Context, title, imageURL string, width, height int) (*models.Project, error) {
	title = strings.TrimSpace(title)
	imageURL = strings.TrimSpace(imageURL)

	switch {
	case title == "":
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return nil, fmt.Errorf("%w: title must be at most %d characters", apperrors.ErrValidation, MaxTitleLength)
	case imageURL == "":
		return nil, fmt.Errorf("%w: image_url is required", apperrors.ErrValidation)
	case width < 1 || width > MaxImageSide:
		return nil, fmt.Errorf("%w: width must be between 1 and %d", apperrors.ErrValidation, MaxImageSide)
	case height < 1 || height > MaxImageSide:
		return nil, fmt.Errorf("%w: height must be between 1 and %d", apperrors.ErrValidation, MaxImageSide)
	}

	project := &models.Project{
		Title:    title,
		ImageURL: imageURL,
		Width:    width,
		Height:   height,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]models.ProjectSummary, error) {
	return s.repo.List(ctx)
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Ensure projectService implements ProjectService at compile time.
var _ ProjectService = (*projectService)(nil)
