package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinframe-inc/pinframe-engine/pkg/services"
)

// CreatePinRequest is the body for POST /api/projects/{projectId}/pins.
// Coordinates are normalized fractions of the image dimensions.
type CreatePinRequest struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// AddCommentRequest is the body for POST /api/pins/{pinId}/comments.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// PinsHandler handles pin and comment HTTP requests.
type PinsHandler struct {
	pinService     services.PinService
	commentService services.CommentService
	logger         *zap.Logger
}

// NewPinsHandler creates a new pins handler.
func NewPinsHandler(pinService services.PinService, commentService services.CommentService, logger *zap.Logger) *PinsHandler {
	return &PinsHandler{
		pinService:     pinService,
		commentService: commentService,
		logger:         logger,
	}
}

// RegisterRoutes registers the pins handler's routes on the given mux.
func (h *PinsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/projects/{projectId}/pins", h.Create)
	mux.HandleFunc("DELETE /api/pins/{pinId}", h.Delete)
	mux.HandleFunc("POST /api/pins/{pinId}/comments", h.AddComment)
}

// Create handles POST /api/projects/{projectId}/pins. On success the
// project's subscriber group receives a pin_created event.
func (h *PinsHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("projectId"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "project id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CreatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	pin, err := h.pinService.Create(r.Context(), projectID, req.Content, req.X, req.Y)
	if err != nil {
		if err := ServiceError(w, h.logger, err); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, pin); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/pins/{pinId}. The pin's comments cascade, and
// the owning project's subscriber group receives a pin_deleted event.
func (h *PinsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pinID, err := uuid.Parse(r.PathValue("pinId"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "pin id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.pinService.Delete(r.Context(), pinID); err != nil {
		if err := ServiceError(w, h.logger, err); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AddComment handles POST /api/pins/{pinId}/comments. The owning project's
// subscriber group receives a comment_added event.
func (h *PinsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	pinID, err := uuid.Parse(r.PathValue("pinId"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "pin id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	comment, err := h.commentService.Add(r.Context(), pinID, req.Text)
	if err != nil {
		if err := ServiceError(w, h.logger, err); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, comment); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
