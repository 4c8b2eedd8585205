package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinframe-inc/pinframe-engine/pkg/apperrors"
	"github.com/pinframe-inc/pinframe-engine/pkg/models"
)

func newPinsMux(pins *mockPinService, comments *mockCommentService) *http.ServeMux {
	mux := http.NewServeMux()
	NewPinsHandler(pins, comments, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestPinsHandler_Create(t *testing.T) {
	projectID := uuid.New()
	pin := &models.Pin{
		ID:        uuid.New(),
		ProjectID: projectID,
		Content:   "Fix padding",
		X:         0.15,
		Y:         0.30,
		Comments:  []models.Comment{},
	}
	svc := &mockPinService{pin: pin}
	mux := newPinsMux(svc, &mockCommentService{})

	body := `{"content":"Fix padding","x":0.15,"y":0.30}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+projectID.String()+"/pins", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, projectID, svc.createdProjectID)

	var got models.Pin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, pin.ID, got.ID)
	assert.NotNil(t, got.Comments, "a fresh pin serializes with an empty comments array")
}

func TestPinsHandler_Create_InvalidProjectID(t *testing.T) {
	mux := newPinsMux(&mockPinService{}, &mockCommentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/projects/nope/pins", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_id")
}

func TestPinsHandler_Create_ProjectNotFound(t *testing.T) {
	mux := newPinsMux(&mockPinService{err: apperrors.ErrNotFound}, &mockCommentService{})

	body := `{"content":"Fix padding","x":0.5,"y":0.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+uuid.NewString()+"/pins", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPinsHandler_Create_CoordinateOutOfRange(t *testing.T) {
	svc := &mockPinService{err: fmt.Errorf("x must be between 0 and 1: %w", apperrors.ErrValidation)}
	mux := newPinsMux(svc, &mockCommentService{})

	body := `{"content":"Fix padding","x":1.5,"y":0.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+uuid.NewString()+"/pins", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestPinsHandler_Delete(t *testing.T) {
	svc := &mockPinService{}
	mux := newPinsMux(svc, &mockCommentService{})

	pinID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/pins/"+pinID.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pinID, svc.deletedID)
	assert.Contains(t, rec.Body.String(), "deleted")
}

func TestPinsHandler_Delete_NotFound(t *testing.T) {
	mux := newPinsMux(&mockPinService{err: apperrors.ErrNotFound}, &mockCommentService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/pins/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestPinsHandler_AddComment(t *testing.T) {
	pinID := uuid.New()
	comment := &models.Comment{ID: uuid.New(), PinID: pinID, Text: "Will fix"}
	svc := &mockCommentService{comment: comment}
	mux := newPinsMux(&mockPinService{}, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/pins/"+pinID.String()+"/comments", strings.NewReader(`{"text":"Will fix"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pinID, svc.addedPinID)
	assert.Equal(t, "Will fix", svc.addedText)

	var got models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, comment.ID, got.ID)
}

func TestPinsHandler_AddComment_PinNotFound(t *testing.T) {
	mux := newPinsMux(&mockPinService{}, &mockCommentService{err: apperrors.ErrNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/pins/"+uuid.NewString()+"/comments", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPinsHandler_AddComment_InvalidBody(t *testing.T) {
	mux := newPinsMux(&mockPinService{}, &mockCommentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/pins/"+uuid.NewString()+"/comments", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_body")
}
