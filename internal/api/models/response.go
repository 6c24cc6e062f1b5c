package models

import (
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectResponse carries one projection run and its summary.
type ProjectResponse struct {
	Records []domain.ProjectionRecord `json:"records"`
	Summary domain.Summary            `json:"summary"`
}

// HeirResponse reports both valuation forms for an estate snapshot.
type HeirResponse struct {
	SimpleValue       decimal.Decimal `json:"simpleValue"`
	DistributionValue decimal.Decimal `json:"distributionValue"`
	Strategy          string          `json:"strategy"`
	HorizonYears      int             `json:"horizonYears"`
}

// ErrorDetail is the machine-readable error body.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps every non-2xx body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
