// Package handler exposes the parse pipeline over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealfinder/internal/extractor"
	"dealfinder/internal/model"
	"dealfinder/internal/service"
)

// ParseHandler handles mandate parsing HTTP requests
type ParseHandler struct {
	pipeline *service.Pipeline
}

// NewParseHandler creates a new parse handler
func NewParseHandler(pipeline *service.Pipeline) *ParseHandler {
	return &ParseHandler{pipeline: pipeline}
}

// Parse handles POST /api/v1/parse
func (h *ParseHandler) Parse(c *gin.Context) {
	var req model.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.pipeline.Parse(c.Request.Context(), req.Text)
	if err != nil {
		status, body := classifyParseError(err)
		if status == 0 {
			// Superseded: the client already issued a newer request, nothing
			// useful to return here.
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ParseStream handles POST /api/v1/parse/stream - SSE streaming parse
func (h *ParseHandler) ParseStream(c *gin.Context) {
	var req model.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Streaming not supported"})
		return
	}

	err := h.pipeline.ParseStream(c.Request.Context(), req.Text, func(stage service.StreamStage) error {
		sendSSE(c, stage.Stage, stage.Data)
		flusher.Flush()
		return nil
	})
	if err != nil {
		_, body := classifyParseError(err)
		sendSSE(c, "error", body)
		flusher.Flush()
	}
}

// classifyParseError maps pipeline failures to HTTP status and body. A zero
// status means the error should produce no response body at all.
func classifyParseError(err error) (int, model.ErrorResponse) {
	switch {
	case errors.Is(err, service.ErrSuperseded):
		return 0, model.ErrorResponse{}
	case errors.Is(err, service.ErrEmptyText):
		return http.StatusBadRequest, model.ErrorResponse{Error: "Mandate text is empty"}
	}

	kind := extractor.KindOf(err)
	switch kind {
	case extractor.KindRateLimited:
		return http.StatusTooManyRequests, model.ErrorResponse{
			Error: "The parser is handling too many requests. Try again in a moment.",
			Kind:  string(kind),
		}
	case extractor.KindUnavailable:
		return http.StatusServiceUnavailable, model.ErrorResponse{
			Error: "The parser is temporarily unavailable.",
			Kind:  string(kind),
		}
	case extractor.KindBadPayload:
		return http.StatusBadGateway, model.ErrorResponse{
			Error: "The parser returned an unusable response.",
			Kind:  string(kind),
		}
	default:
		return http.StatusBadGateway, model.ErrorResponse{
			Error: "Parsing failed: " + err.Error(),
			Kind:  string(kind),
		}
	}
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
