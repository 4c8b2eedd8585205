package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pinframe-inc/pinframe-engine/pkg/apperrors"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
	"github.com/pinframe-inc/pinframe-engine/pkg/realtime"
)

// mockProjectRepo is a configurable mock for service tests.
type mockProjectRepo struct {
	project   *models.Project
	summaries []models.ProjectSummary
	exists    bool
	err       error

	created []*models.Project
	deleted []uuid.UUID
}

func (m *mockProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	project.ID = uuid.New()
	if project.Pins == nil {
		project.Pins = []models.Pin{}
	}
	m.created = append(m.created, project)
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context) ([]models.ProjectSummary, error) {
	return m.summaries, m.err
}

func (m *mockProjectRepo) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.project, nil
}

func (m *mockProjectRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.exists, m.err
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockPinRepo is a configurable mock for service tests.
type mockPinRepo struct {
	pin             *models.Pin
	getErr          error
	createErr       error
	deleteErr       error
	deleteProjectID uuid.UUID

	created []*models.Pin
	deleted []uuid.UUID
}

func (m *mockPinRepo) Create(ctx context.Context, pin *models.Pin) error {
	if m.createErr != nil {
		return m.createErr
	}
	pin.ID = uuid.New()
	pin.Comments = []models.Comment{}
	m.created = append(m.created, pin)
	return nil
}

func (m *mockPinRepo) Get(ctx context.Context, id uuid.UUID) (*models.Pin, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.pin == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.pin, nil
}

func (m *mockPinRepo) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if m.deleteErr != nil {
		return uuid.Nil, m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return m.deleteProjectID, nil
}

func (m *mockPinRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Pin, error) {
	return nil, nil
}

// mockCommentRepo is a configurable mock for service tests.
type mockCommentRepo struct {
	createErr error
	created   []*models.Comment
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	comment.ID = uuid.New()
	m.created = append(m.created, comment)
	return nil
}

func (m *mockCommentRepo) ListByPin(ctx context.Context, pinID uuid.UUID) ([]models.Comment, error) {
	return nil, nil
}

func (m *mockCommentRepo) CountByPin(ctx context.Context, pinID uuid.UUID) (int, error) {
	return len(m.created), nil
}

// recordingBroadcaster captures every event handed to it.
type recordingBroadcaster struct {
	err    error
	events []realtime.Event
}

func (b *recordingBroadcaster) Broadcast(ctx context.Context, event realtime.Event) error {
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, event)
	return nil
}
