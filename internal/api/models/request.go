// Package models defines the API request and response envelopes.
package models

import (
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectRequest asks for a single projection run.
type ProjectRequest struct {
	Params domain.ParameterSet `json:"params" binding:"required"`
}

// CompareRequest asks for a base run plus named override scenarios.
type CompareRequest struct {
	Base      domain.ParameterSet                  `json:"base" binding:"required"`
	Scenarios map[string]domain.ParameterOverrides `json:"scenarios"`
}

// HeirRequest values an estate snapshot for a set of heirs.
type HeirRequest struct {
	Balances     domain.AccountBalances `json:"balances" binding:"required"`
	Heirs        []domain.Heir          `json:"heirs"`
	Strategy     string                 `json:"strategy"`
	HorizonYears int                    `json:"horizonYears"`
	DiscountRate decimal.Decimal        `json:"discountRate"`
}
