// Package predictor is the prediction stub: a fixed-shape synthetic forecast
// produced from bounded random draws. There is no model behind it.
package predictor

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"tradecast/internal/common"
	"tradecast/internal/models"
)

// Service implements interfaces.PredictorService.
type Service struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *common.Logger
}

// NewService creates a predictor. Seed 0 seeds from the clock; a fixed seed
// gives a reproducible draw sequence for demos and tests.
func NewService(logger *common.Logger, seed int64) *Service {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1)),
		logger: logger,
	}
}

// Generate validates params and returns a synthetic forecast:
// current price in [50, 200), change in [-5%, +5%), confidence in [65%, 95%).
func (s *Service) Generate(ctx context.Context, params models.PredictionParams) (models.PredictionResult, error) {
	if err := params.Validate(); err != nil {
		return models.PredictionResult{}, err
	}

	s.mu.Lock()
	currentPrice := 50 + s.rng.Float64()*150
	predictedChange := -0.05 + s.rng.Float64()*0.10
	confidence := 0.65 + s.rng.Float64()*0.30
	s.mu.Unlock()

	result := models.PredictionResult{
		CurrentPrice:    currentPrice,
		PredictedPrice:  currentPrice * (1 + predictedChange),
		PredictedChange: predictedChange,
		Confidence:      confidence,
	}

	s.logger.Debug().
		Str("market", params.Market).
		Str("asset", params.Asset).
		Str("model", params.Model).
		Float64("predicted_change", result.PredictedChange).
		Msg("Prediction generated")

	return result, nil
}
