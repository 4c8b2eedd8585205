package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pinframe-inc/pinframe-engine/pkg/database"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
)

// CommentRepository defines the interface for comment data access.
// Comments are append-only: they are created, listed, and removed only by
// the pins FK cascade when their parent pin is deleted.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPin(ctx context.Context, pinID uuid.UUID) ([]models.Comment, error)
	CountByPin(ctx context.Context, pinID uuid.UUID) (int, error)
}

// commentRepository implements CommentRepository using PostgreSQL.
type commentRepository struct {
	db *database.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *database.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment, assigning its ID and creation timestamp.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO comments (id, pin_id, text, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.PinID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPin returns the pin's comments in chronological order.
func (r *commentRepository) ListByPin(ctx context.Context, pinID uuid.UUID) ([]models.Comment, error) {
	query := `
		SELECT id, pin_id, text, created_at
		FROM comments
		WHERE pin_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, pinID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0, 8)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PinID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}

// CountByPin returns the number of comments on a pin.
func (r *commentRepository) CountByPin(ctx context.Context, pinID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE pin_id = $1`, pinID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// Ensure commentRepository implements CommentRepository at compile time.
var _ CommentRepository = (*commentRepository)(nil)
