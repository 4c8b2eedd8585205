package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinframe-inc/pinframe-engine/pkg/apperrors"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
)

func TestPinRepository_CreateAndGet(t *testing.T) {
	projects, pins, _ := newRepos(t)
	ctx := context.Background()

	project := createProject(t, projects, "pin-create")
	pin := &models.Pin{
		ProjectID: project.ID,
		Content:   "Fix padding",
		X:         0,
		Y:         1,
	}
	require.NoError(t, pins.Create(ctx, pin))
	assert.NotEqual(t, uuid.Nil, pin.ID)

	got, err := pins.Get(ctx, pin.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ProjectID)
	assert.Equal(t, "Fix padding", got.Content)
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 1.0, got.Y)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Comments)
}

func TestPinRepository_Create_UnknownProject(t *testing.T) {
	_, pins, _ := newRepos(t)

	pin := &models.Pin{ProjectID: uuid.New(), Content: "orphan", X: 0.5, Y: 0.5}
	err := pins.Create(context.Background(), pin)
	require.Error(t, err, "the projects FK rejects orphan pins")
}

func TestPinRepository_Get_NotFound(t *testing.T) {
	_, pins, _ := newRepos(t)

	_, err := pins.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPinRepository_Delete_ReturnsOwningProject(t *testing.T) {
	projects, pins, _ := newRepos(t)
	ctx := context.Background()

	project := createProject(t, projects, "pin-delete")
	pin := createPin(t, pins, project, "to delete")

	projectID, err := pins.Delete(ctx, pin.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, projectID)

	_, err = pins.Get(ctx, pin.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPinRepository_Delete_CascadesToComments(t *testing.T) {
	projects, pins, comments := newRepos(t)
	ctx := context.Background()

	project := createProject(t, projects, "pin-delete-cascade")
	pin := createPin(t, pins, project, "threaded")
	createComment(t, comments, pin, "first")
	createComment(t, comments, pin, "second")

	_, err := pins.Delete(ctx, pin.ID)
	require.NoError(t, err)

	count, err := comments.CountByPin(ctx, pin.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The project itself is untouched.
	got, err := projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Pins)
}

func TestPinRepository_Delete_NotIdempotent(t *testing.T) {
	projects, pins, _ := newRepos(t)
	ctx := context.Background()

	project := createProject(t, projects, "pin-delete-twice")
	pin := createPin(t, pins, project, "once only")

	_, err := pins.Delete(ctx, pin.ID)
	require.NoError(t, err)

	_, err = pins.Delete(ctx, pin.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPinRepository_ListByProject(t *testing.T) {
	projects, pins, _ := newRepos(t)
	ctx := context.Background()

	project := createProject(t, projects, "pin-list")
	first := createPin(t, pins, project, "first")
	second := createPin(t, pins, project, "second")

	got, err := pins.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}
