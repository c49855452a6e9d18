package server

import (
	"errors"
	"net/http"

	"tradecast/internal/models"
)

// handlePredictionCreate handles POST /api/predictions. Requires a live
// session; the parameter bundle is validated against the catalogs, and a
// successful prediction is recorded as a "prediction_generated" activity
// entry with the bundle as details.
func (s *Server) handlePredictionCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ac := requireSession(w, r)
	if ac == nil {
		return
	}

	var params models.PredictionParams
	if !DecodeJSON(w, r, &params) {
		return
	}

	ctx := r.Context()
	result, err := s.app.Predictor.Generate(ctx, params)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Prediction failed")
		WriteError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	s.app.Sessions.LogActivity(ctx, ac.Session, models.ActivityPrediction, params.Details())

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   result,
	})
}
