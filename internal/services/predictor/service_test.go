package predictor

import (
	"context"
	"errors"
	"testing"

	"tradecast/internal/common"
	"tradecast/internal/models"
)

func validParams() models.PredictionParams {
	return models.PredictionParams{
		Market:           "Stocks",
		Asset:            "AAPL",
		Horizon:          "1 Day",
		InvestmentAmount: 1000,
		RiskLevel:        "Medium",
		Model:            "Random Forest",
	}
}

func TestGenerateBounds(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 0)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		result, err := svc.Generate(ctx, validParams())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		if result.CurrentPrice < 50 || result.CurrentPrice >= 200 {
			t.Fatalf("current price out of range: %f", result.CurrentPrice)
		}
		if result.PredictedChange < -0.05 || result.PredictedChange >= 0.05 {
			t.Fatalf("predicted change out of range: %f", result.PredictedChange)
		}
		if result.Confidence < 0.65 || result.Confidence >= 0.95 {
			t.Fatalf("confidence out of range: %f", result.Confidence)
		}

		want := result.CurrentPrice * (1 + result.PredictedChange)
		if diff := result.PredictedPrice - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("predicted price inconsistent with change: %f vs %f", result.PredictedPrice, want)
		}
	}
}

func TestGenerateSeededDeterminism(t *testing.T) {
	ctx := context.Background()
	a := NewService(common.NewSilentLogger(), 42)
	b := NewService(common.NewSilentLogger(), 42)

	for i := 0; i < 10; i++ {
		ra, _ := a.Generate(ctx, validParams())
		rb, _ := b.Generate(ctx, validParams())
		if ra != rb {
			t.Fatalf("draw %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 42)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.PredictionParams)
		field  string
	}{
		{"unknown market", func(p *models.PredictionParams) { p.Market = "Tulips" }, "market"},
		{"asset from wrong market", func(p *models.PredictionParams) { p.Asset = "BTC/USD" }, "asset"},
		{"unknown horizon", func(p *models.PredictionParams) { p.Horizon = "1 Year" }, "horizon"},
		{"amount below minimum", func(p *models.PredictionParams) { p.InvestmentAmount = 50 }, "investment_amount"},
		{"amount above maximum", func(p *models.PredictionParams) { p.InvestmentAmount = 500000 }, "investment_amount"},
		{"unknown risk level", func(p *models.PredictionParams) { p.RiskLevel = "Extreme" }, "risk_level"},
		{"unknown model", func(p *models.PredictionParams) { p.Model = "GPT" }, "model"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)

			_, err := svc.Generate(ctx, params)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}
