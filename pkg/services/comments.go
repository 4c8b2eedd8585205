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

// CommentService defines the interface for comment operations.
type CommentService interface {
	// Add validates and appends a reply to a pin's thread, then notifies
	// the owning project's subscriber group.
	Add(ctx context.Context, pinID uuid.UUID, text string) (*models.Comment, error)
}

// commentService implements CommentService.
type commentService struct {
	comments    repositories.CommentRepository
	pins        repositories.PinRepository
	broadcaster realtime.Broadcaster
	logger      *zap.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repositories.CommentRepository,
	pins repositories.PinRepository,
	broadcaster realtime.Broadcaster,
	logger *zap.Logger,
) CommentService {
	return &commentService{
		comments:    comments,
		pins:        pins,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *commentService) Add(ctx context.Context, pinID uuid.UUID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperrors.ErrValidation)
	}

	// The pin lookup doubles as the not-found check and supplies the
	// project id the broadcast is addressed to.
	pin, err := s.pins.Get(ctx, pinID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PinID: pinID,
		Text:  text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.broadcaster.Broadcast(ctx, realtime.NewCommentAdded(pin.ProjectID, *comment)); err != nil {
		s.logger.Error("Failed to broadcast event",
			zap.String("event_type", realtime.TypeCommentAdded),
			zap.String("project_id", pin.ProjectID.String()),
			zap.Error(err),
		)
	}

	return comment, nil
}

// Ensure commentService implements CommentService at compile time.
var _ CommentService = (*commentService)(nil)
