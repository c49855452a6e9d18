package models

import (
	"fmt"
	"slices"
)

// Investment amount bounds in dollars.
const (
	MinInvestmentAmount = 100
	MaxInvestmentAmount = 100000
)

// PredictionParams is the typed parameter bundle handed to the prediction
// stub. Fields are checked against the catalogs via Validate before use.
type PredictionParams struct {
	Market           string  `json:"market"`
	Asset            string  `json:"asset"`
	Horizon          string  `json:"horizon"`
	InvestmentAmount float64 `json:"investment_amount"`
	RiskLevel        string  `json:"risk_level"`
	Model            string  `json:"model"`
}

// Validate checks every field against the catalogs and bounds. The first
// failure is returned as a ValidationError.
func (p PredictionParams) Validate() error {
	if !ValidMarket(p.Market) {
		return NewValidationError("market", fmt.Sprintf("unknown market '%s'", p.Market))
	}
	if !ValidAsset(p.Market, p.Asset) {
		return NewValidationError("asset", fmt.Sprintf("unknown asset '%s' for market '%s'", p.Asset, p.Market))
	}
	if !slices.Contains(PredictionHorizons, p.Horizon) {
		return NewValidationError("horizon", fmt.Sprintf("unknown horizon '%s'", p.Horizon))
	}
	if p.InvestmentAmount < MinInvestmentAmount || p.InvestmentAmount > MaxInvestmentAmount {
		return NewValidationError("investment_amount",
			fmt.Sprintf("must be between %d and %d", MinInvestmentAmount, MaxInvestmentAmount))
	}
	if !slices.Contains(RiskLevels, p.RiskLevel) {
		return NewValidationError("risk_level", fmt.Sprintf("unknown risk level '%s'", p.RiskLevel))
	}
	if !slices.Contains(AIModels, p.Model) {
		return NewValidationError("model", fmt.Sprintf("unknown model '%s'", p.Model))
	}
	return nil
}

// Details returns the parameter bundle as an activity details payload.
func (p PredictionParams) Details() map[string]any {
	return map[string]any{
		"market":            p.Market,
		"asset":             p.Asset,
		"horizon":           p.Horizon,
		"investment_amount": p.InvestmentAmount,
		"risk_level":        p.RiskLevel,
		"model":             p.Model,
	}
}

// PredictionResult is the fixed-shape output of the prediction stub.
// PredictedChange is a fraction (-0.05 means -5%), Confidence a fraction in
// [0.65, 0.95).
type PredictionResult struct {
	CurrentPrice    float64 `json:"current_price"`
	PredictedPrice  float64 `json:"predicted_price"`
	PredictedChange float64 `json:"predicted_change"`
	Confidence      float64 `json:"confidence"`
}
