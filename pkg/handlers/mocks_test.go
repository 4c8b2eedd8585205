package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/pinframe-inc/pinframe-engine/pkg/models"
)

// mockProjectService is a configurable mock for handler tests.
type mockProjectService struct {
	project   *models.Project
	summaries []models.ProjectSummary
	err       error

	createdTitle string
	deletedID    uuid.UUID
}

func (m *mockProjectService) Create(ctx context.Context, title, imageURL string, width, height int) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createdTitle = title
	return m.project, nil
}

func (m *mockProjectService) List(ctx context.Context) ([]models.ProjectSummary, error) {
	return m.summaries, m.err
}

func (m *mockProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.project, nil
}

func (m *mockProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockPinService is a configurable mock for handler tests.
type mockPinService struct {
	pin *models.Pin
	err error

	createdProjectID uuid.UUID
	deletedID        uuid.UUID
}

func (m *mockPinService) Create(ctx context.Context, projectID uuid.UUID, content string, x, y float64) (*models.Pin, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createdProjectID = projectID
	return m.pin, nil
}

func (m *mockPinService) Delete(ctx context.Context, pinID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = pinID
	return nil
}

// mockCommentService is a configurable mock for handler tests.
type mockCommentService struct {
	comment *models.Comment
	err     error

	addedPinID uuid.UUID
	addedText  string
}

func (m *mockCommentService) Add(ctx context.Context, pinID uuid.UUID, text string) (*models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.addedPinID = pinID
	m.addedText = text
	return m.comment, nil
}
