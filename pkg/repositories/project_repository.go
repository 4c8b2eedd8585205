// Package repositories contains PostgreSQL data access for pinframe-engine.
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

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	List(ctx context.Context) ([]models.ProjectSummary, error)
	// Get returns the project with all pins and each pin's comments attached.
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Delete removes the project; pins and comments go with it (FK cascade).
	Delete(ctx context.Context, id uuid.UUID) error
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts a new project, assigning its ID and creation timestamp.
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = time.Now().UTC()
	if project.Pins == nil {
		project.Pins = []models.Pin{}
	}

	query := `
		INSERT INTO projects (id, title, image_url, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		project.ID,
		project.Title,
		project.ImageURL,
		project.Width,
		project.Height,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// List returns all projects in summary form, newest first.
func (r *projectRepository) List(ctx context.Context) ([]models.ProjectSummary, error) {
	query := `
		SELECT id, title, image_url, width, height, created_at
		FROM projects
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.ProjectSummary, 0, 16)
	for rows.Next() {
		var p models.ProjectSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.ImageURL, &p.Width, &p.Height, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}

// Get retrieves a project by ID with pins and comments eagerly attached.
func (r *projectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `
		SELECT id, title, image_url, width, height, created_at
		FROM projects
		WHERE id = $1`

	var project models.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Title,
		&project.ImageURL,
		&project.Width,
		&project.Height,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	pins, err := r.loadPins(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Pins = pins

	return &project, nil
}

// loadPins fetches the project's pins with their comment threads in two
// queries, then stitches comments onto pins in memory.
func (r *projectRepository) loadPins(ctx context.Context, projectID uuid.UUID) ([]models.Pin, error) {
	pinQuery := `
		SELECT id, project_id, content, x, y, created_at
		FROM pins
		WHERE project_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, pinQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pins: %w", err)
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

	commentQuery := `
		SELECT c.id, c.pin_id, c.text, c.created_at
		FROM comments c
		JOIN pins p ON p.id = c.pin_id
		WHERE p.project_id = $1
		ORDER BY c.created_at`

	commentRows, err := r.db.Query(ctx, commentQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	defer commentRows.Close()

	byPin := make(map[uuid.UUID][]models.Comment)
	for commentRows.Next() {
		var c models.Comment
		if err := commentRows.Scan(&c.ID, &c.PinID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		byPin[c.PinID] = append(byPin[c.PinID], c)
	}
	if err := commentRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	for i := range pins {
		if comments, ok := byPin[pins[i].ID]; ok {
			pins[i].Comments = comments
		}
	}

	return pins, nil
}

// Exists reports whether a project with the given ID exists.
func (r *projectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return exists, nil
}

// Delete removes a project. The pins and comments FK constraints cascade.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
