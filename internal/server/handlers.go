package server

import (
	"net/http"

	"tradecast/internal/common"
	"tradecast/internal/models"
)

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"full":    common.GetFullVersion(),
	})
}

// handleCatalog responds to GET /api/catalog with the selection catalogs the
// UI renders into its parameter controls.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"markets":           models.Markets,
			"assets":            models.MarketAssets,
			"models":            models.AIModels,
			"risk_levels":       models.RiskLevels,
			"horizons":          models.PredictionHorizons,
			"experience_levels": models.ExperienceLevels,
			"investment_bounds": map[string]int{
				"min": models.MinInvestmentAmount,
				"max": models.MaxInvestmentAmount,
			},
		},
	})
}
