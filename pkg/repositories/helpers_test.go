package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pinframe-inc/pinframe-engine/pkg/models"
	"github.com/pinframe-inc/pinframe-engine/pkg/testhelpers"
)

// newRepos returns repositories backed by the shared test database.
func newRepos(t *testing.T) (ProjectRepository, PinRepository, CommentRepository) {
	t.Helper()

	db := testhelpers.GetEngineDB(t).DB
	return NewProjectRepository(db), NewPinRepository(db), NewCommentRepository(db)
}

func createProject(t *testing.T, projects ProjectRepository, title string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:    title,
		ImageURL: "/uploads/" + title + ".png",
		Width:    1920,
		Height:   1080,
	}
	require.NoError(t, projects.Create(context.Background(), project))
	return project
}

func createPin(t *testing.T, pins PinRepository, project *models.Project, content string) *models.Pin {
	t.Helper()

	pin := &models.Pin{
		ProjectID: project.ID,
		Content:   content,
		X:         0.25,
		Y:         0.75,
	}
	require.NoError(t, pins.Create(context.Background(), pin))
	return pin
}

func createComment(t *testing.T, comments CommentRepository, pin *models.Pin, text string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		PinID: pin.ID,
		Text:  text,
	}
	require.NoError(t, comments.Create(context.Background(), comment))
	return comment
}
