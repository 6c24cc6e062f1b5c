// Package handlers implements the REST endpoints over the projection
// engine. Handlers hold no per-request state; the engine is pure, so one
// handler instance serves all requests concurrently.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoward/glidepath/internal/api/models"
	"github.com/khoward/glidepath/internal/calculation"
	"github.com/khoward/glidepath/internal/config"
)

// ProjectionHandler serves single-scenario projection runs.
type ProjectionHandler struct {
	Engine *calculation.ProjectionEngine
	Parser *config.InputParser
}

// NewProjectionHandler creates a projection handler.
func NewProjectionHandler(engine *calculation.ProjectionEngine) *ProjectionHandler {
	return &ProjectionHandler{Engine: engine, Parser: config.NewInputParser()}
}

// Run handles POST /api/v1/project.
func (h *ProjectionHandler) Run(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	if err := h.Parser.ValidatePlan(&config.PlanFile{Base: req.Params}); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_PARAMS", Message: err.Error()},
		})
		return
	}

	records, err := h.Engine.GenerateProjections(&req.Params)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PROJECTION_FAILED", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.ProjectResponse{
		Records: records,
		Summary: calculation.CalculateSummary(records),
	})
}
