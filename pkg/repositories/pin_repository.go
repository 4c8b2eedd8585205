package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pinframe-inc/pinframe-engine/pkg/apperrors"
	"github.com/pinframe-inc/pinframe-engine/pkg/database"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
)

// PinRepository defines the interface for pin data access.
type PinRepository interface {
	Create(ctx context.Context, pin *models.Pin) error
	// Get returns the pin without its comment thread.
	Get(ctx context.Context, id uuid.UUID) (*models.Pin, error)
	// Delete removes the pin and cascades to its comments. It returns the
	// owning project's ID so callers can notify that project's group.
	// Deleting an unknown pin is an error, not a no-op.
	Delete(ctx context.Context, id uuid.UUID) (projectID uuid.UUID, err error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Pin, error)
}

// pinRepository implements PinRepository using PostgreSQL.
type pinRepository struct {
	db *database.DB
}

// NewPinRepository creates a new pin repository.
func NewPinRepository(db *database.DB) PinRepository {
	return &pinRepository{db: db}
}

// Create inserts a new pin, assigning its ID and creation timestamp.
func (r *pinRepository) Create(ctx context.Context, pin *models.Pin) error {
	if pin.ID == uuid.Nil {
		pin.ID = uuid.New()
	}
	pin.CreatedAt = time.Now().UTC()
	if pin.Comments == nil {
		pin.Comments = []models.Comment{}
	}

	query := `
		INSERT INTO pins (id, project_id, content, x, y, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		pin.ID,
		pin.ProjectID,
		pin.Content,
		pin.X,
		pin.Y,
		pin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pin: %w", err)
	}

	return nil
}

// Get retrieves a pin by ID. The comment thread is not loaded.
func (r *pinRepository) Get(ctx context.Context, id uuid.UUID) (*models.Pin, error) {
	query := `
		SELECT id, project_id, content, x, y, created_at
		FROM pins
		WHERE id = $1`

	var pin models.Pin
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pin.ID,
		&pin.ProjectID,
		&pin.Content,
		&pin.X,
		&pin.Y,
		&pin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}
	pin.Comments = []models.Comment{}

	return &pin, nil
}

// Delete removes a pin and returns the owning project's ID.
func (r *pinRepository) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var projectID uuid.UUID
	err := r.db.QueryRow(ctx, `DELETE FROM pins WHERE id = $1 RETURNING project_id`, id).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperrors.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to delete pin: %w", err)
	}
	return projectID, nil
}

// ListByProject returns the project's pins, oldest first, without comments.
func (r *pinRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Pin, error) {
	query := `
		SELECT id, project_id, content, x, y, created_at
		FROM pins
		WHERE project_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins: %w", err)
	}
	defer rows.Close()

	pins := make([]models.Pin, 0, 8)
	for rows.Next() {
		var pin models.Pin
		if err := rows.Scan(&pin.ID, &pin.ProjectID, &pin.Content, &pin.X, &pin.Y, &pin.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pin: %w", err)
		}
		pin.Comments = []models.Comment{}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pins: %w", err)
	}

	return pins, nil
}

// Ensure pinRepository implements PinRepository at compile time.
var _ PinRepository = (*pinRepository)(nil)
