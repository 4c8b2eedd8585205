package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinframe-inc/pinframe-engine/pkg/apperrors"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
	"github.com/pinframe-inc/pinframe-engine/pkg/realtime"
	"github.com/pinframe-inc/pinframe-engine/pkg/repositories"
)

// PinService defines the interface for pin operations.
type PinService interface {
	// Create validates and persists a new pin on a project's image, then
	// notifies the project's subscriber group.
	Create(ctx context.Context, projectID uuid.UUID, content string, x, y float64) (*models.Pin, error)
	// Delete removes a pin and its comment thread, then notifies the
	// owning project's subscriber group. Deleting an already-deleted pin
	// returns apperrors.ErrNotFound.
	Delete(ctx context.Context, pinID uuid.UUID) error
}

// pinService implements PinService.
type pinService struct {
	pins        repositories.PinRepository
	projects    repositories.ProjectRepository
	broadcaster realtime.Broadcaster
	logger      *zap.Logger
}

// NewPinService creates a new pin service.
func NewPinService(
	pins repositories.PinRepository,
	projects repositories.ProjectRepository,
	broadcaster realtime.Broadcaster,
	logger *zap.Logger,
) PinService {
	return &pinService{
		pins:        pins,
		projects:    projects,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *pinService) Create(ctx context.Context, projectID uuid.UUID, content string, x, y float64) (*models.Pin, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}
	if x < 0 || x > 1 {
		return nil, fmt.Errorf("%w: x must be within [0, 1]", apperrors.ErrValidation)
	}
	if y < 0 || y > 1 {
		return nil, fmt.Errorf("%w: y must be within [0, 1]", apperrors.ErrValidation)
	}

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	pin := &models.Pin{
		ProjectID: projectID,
		Content:   content,
		X:         x,
		Y:         y,
	}
	if err := s.pins.Create(ctx, pin); err != nil {
		return nil, err
	}

	s.notify(ctx, realtime.NewPinCreated(*pin))
	return pin, nil
}

func (s *pinService) Delete(ctx context.Context, pinID uuid.UUID) error {
	projectID, err := s.pins.Delete(ctx, pinID)
	if err != nil {
		return err
	}

	s.notify(ctx, realtime.NewPinDeleted(projectID, pinID))
	return nil
}

// notify hands a committed mutation to the broadcaster. The broadcast is a
// best-effort notification layered on top of the store, so a failure here is
// logged and swallowed; subscribers that miss it catch up on the next fetch.
func (s *pinService) notify(ctx context.Context, event realtime.Event) {
	if err := s.broadcaster.Broadcast(ctx, event); err != nil {
		s.logger.Error("Failed to broadcast event",
			zap.String("event_type", event.Type),
			zap.String("project_id", event.ProjectID.String()),
			zap.Error(err),
		)
	}
}

// Ensure pinService implements PinService at compile time.
var _ PinService = (*pinService)(nil)
