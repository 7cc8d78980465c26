package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealfinder/internal/model"
	"dealfinder/internal/service"
)

// ProspectHandler handles prospect synthesis HTTP requests
type ProspectHandler struct {
	defaultCount int
	maxCount     int
}

// NewProspectHandler creates a new prospect handler
func NewProspectHandler(defaultCount, maxCount int) *ProspectHandler {
	return &ProspectHandler{
		defaultCount: defaultCount,
		maxCount:     maxCount,
	}
}

// Generate handles POST /api/v1/prospects
func (h *ProspectHandler) Generate(c *gin.Context) {
	var req model.ProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	count := req.Count
	if count <= 0 {
		count = h.defaultCount
	}
	if count > h.maxCount {
		count = h.maxCount
	}

	prospects := service.SynthProspects(req.Record, count)
	c.JSON(http.StatusOK, model.ProspectResponse{Prospects: prospects})
}
