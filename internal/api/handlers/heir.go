package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoward/glidepath/internal/api/models"
	"github.com/khoward/glidepath/internal/calculation"
	"github.com/shopspring/decimal"
)

// HeirHandler values estate snapshots without running a projection.
type HeirHandler struct{}

// NewHeirHandler creates a heir handler.
func NewHeirHandler() *HeirHandler {
	return &HeirHandler{}
}

// Run handles POST /api/v1/heir.
func (h *HeirHandler) Run(c *gin.Context) {
	var req models.HeirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	strategy := calculation.IRADistributionStrategy(req.Strategy)
	switch strategy {
	case calculation.DistributeEven, calculation.DistributeLump:
	case "":
		strategy = calculation.DistributeEven
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_STRATEGY", Message: "strategy must be \"even\" or \"lump\""},
		})
		return
	}

	horizon := req.HorizonYears
	if horizon <= 0 {
		horizon = calculation.InheritedIRAWindow
	}

	if len(req.Heirs) > 0 {
		sum := decimal.Zero
		for _, heir := range req.Heirs {
			sum = sum.Add(heir.SplitPercent)
		}
		if diff := sum.Sub(decimal.NewFromInt(1)).Abs(); diff.GreaterThan(decimal.NewFromFloat(0.0001)) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "INVALID_PARAMS", Message: "heir split percentages must sum to 1.0"},
			})
			return
		}
	}

	c.JSON(http.StatusOK, models.HeirResponse{
		SimpleValue:       calculation.SimpleHeirValue(req.Balances, req.Heirs),
		DistributionValue: calculation.EstateDistributionValue(req.Balances, req.Heirs, strategy, horizon, req.DiscountRate),
		Strategy:          string(strategy),
		HorizonYears:      horizon,
	})
}
