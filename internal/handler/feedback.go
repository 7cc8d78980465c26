package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealfinder/internal/model"
)

// FeedbackLogger persists prospect feedback events.
type FeedbackLogger interface {
	LogFeedback(ctx context.Context, parseID, prospectID, action string) error
}

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	repo FeedbackLogger
}

// NewFeedbackHandler creates a new feedback handler. repo may be nil when
// the service runs without a database.
func NewFeedbackHandler(repo FeedbackLogger) *FeedbackHandler {
	return &FeedbackHandler{repo: repo}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	validActions := map[string]bool{
		"click":        true,
		"contact":      true,
		"view_details": true,
	}
	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid action. Must be one of: click, contact, view_details"})
		return
	}

	if h.repo == nil {
		c.JSON(http.StatusOK, model.FeedbackResponse{
			Success: true,
			Message: "Feedback accepted (persistence disabled)",
		})
		return
	}

	if err := h.repo.LogFeedback(c.Request.Context(), req.ParseID, req.ProspectID, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to log feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	})
}
