package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoward/glidepath/internal/api/models"
	"github.com/khoward/glidepath/internal/compare"
	"github.com/khoward/glidepath/internal/config"
)

// CompareHandler serves multi-scenario comparison runs.
type CompareHandler struct {
	Engine *compare.Engine
	Parser *config.InputParser
}

// NewCompareHandler creates a compare handler.
func NewCompareHandler(engine *compare.Engine) *CompareHandler {
	return &CompareHandler{Engine: engine, Parser: config.NewInputParser()}
}

// Run handles POST /api/v1/compare.
func (h *CompareHandler) Run(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	plan := config.PlanFile{Base: req.Base, Scenarios: req.Scenarios}
	if err := h.Parser.ValidatePlan(&plan); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_PARAMS", Message: err.Error()},
		})
		return
	}

	set, err := h.Engine.CompareScenarios(c.Request.Context(), req.Base, req.Scenarios)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "COMPARISON_FAILED", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, set)
}
