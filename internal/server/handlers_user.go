package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// defaultActivityLimit matches the history view's default page size.
const defaultActivityLimit = 50

// routeUsers dispatches /api/users/{username} and
// /api/users/{username}/activity.
func (s *Server) routeUsers(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/activity") {
		if username := PathParam(r, "/api/users/", "/activity"); username != "" {
			s.handleUserActivity(w, r, username)
			return
		}
	} else if username := PathParam(r, "/api/users/", ""); username != "" {
		s.handleUserGet(w, r, username)
		return
	}
	WriteError(w, http.StatusBadRequest, "username is required in path")
}

// handleUserGet handles GET /api/users/{username}.
func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request, username string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	user, err := s.app.Accounts.GetUserInfo(r.Context(), username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to load user")
		WriteError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user.IsZero() {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("user '%s' not found", username))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   profileResponse(user),
	})
}

// handleUserActivity handles GET /api/users/{username}/activity?limit=N.
// Unknown users yield an empty history, matching the store semantics.
func (s *Server) handleUserActivity(w http.ResponseWriter, r *http.Request, username string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := defaultActivityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.app.Accounts.ListActivities(r.Context(), username, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to list activities")
		WriteError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"username":   username,
			"activities": entries,
			"count":      len(entries),
		},
	})
}
