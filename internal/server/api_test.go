package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecast/internal/app"
	"tradecast/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	a := app.NewTestApp()
	t.Cleanup(a.Close)
	return NewServer(a)
}

// doRequest performs a request against the server's full middleware stack and
// decodes the JSON response body.
func doRequest(t *testing.T, s *Server, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "response should be JSON: %s", rec.Body.String())
	}
	return rec, decoded
}

func registerPayload(username string) map[string]interface{} {
	return map[string]interface{}{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"full_name":        "Test User",
		"accept_terms":     true,
	}
}

// registerAndLogin creates an account and returns a live bearer token.
func registerAndLogin(t *testing.T, s *Server, username string) string {
	t.Helper()

	rec, _ := doRequest(t, s, http.MethodPost, "/api/auth/register", "", registerPayload(username))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	require.True(t, ok, "login response should carry a token")
	return token
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["version"])
	assert.Contains(t, resp["full"], "build:")
	assert.Contains(t, resp["full"], "commit:")
}

func TestCatalogEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/catalog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["markets"], len(models.Markets))
	assert.Len(t, data["models"], len(models.AIModels))
	assert.Len(t, data["risk_levels"], len(models.RiskLevels))
	assert.Len(t, data["horizons"], len(models.PredictionHorizons))

	bounds := data["investment_bounds"].(map[string]interface{})
	assert.EqualValues(t, models.MinInvestmentAmount, bounds["min"])
	assert.EqualValues(t, models.MaxInvestmentAmount, bounds["max"])
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/auth/register", "", registerPayload("alice"))
	require.Equal(t, http.StatusCreated, rec.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])

	// Duplicate username
	rec, resp = doRequest(t, s, http.MethodPost, "/api/auth/register", "", registerPayload("alice"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp["error"], "taken")

	// Validation failure
	payload := registerPayload("bob")
	payload["confirm_password"] = "mismatch1"
	rec, resp = doRequest(t, s, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "confirm_password")
}

func TestLoginInvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	// Wrong password and unknown user produce the same generic message.
	rec, resp := doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", resp["error"])

	rec, resp = doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", resp["error"])
}

func TestLoginResponseOmitsDigest(t *testing.T) {
	s := newTestServer(t)

	doRequest(t, s, http.MethodPost, "/api/auth/register", "", registerPayload("alice"))
	rec, resp := doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthenticatedFlow(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	// Validate the session
	rec, resp := doRequest(t, s, http.MethodGet, "/api/auth/validate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["logged_in"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, false, data["is_demo"])

	// Generate a prediction
	rec, resp = doRequest(t, s, http.MethodPost, "/api/predictions", token, map[string]interface{}{
		"market":            "Crypto",
		"asset":             "BTC/USD",
		"horizon":           "1 Day",
		"investment_amount": 1000,
		"risk_level":        "High",
		"model":             "Ensemble Model",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := resp["data"].(map[string]interface{})
	assert.GreaterOrEqual(t, result["current_price"].(float64), 50.0)
	assert.Less(t, result["current_price"].(float64), 200.0)
	assert.GreaterOrEqual(t, result["confidence"].(float64), 0.65)

	// History shows registration, login, prediction in order
	rec, resp = doRequest(t, s, http.MethodGet, "/api/users/alice/activity", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	activities := resp["data"].(map[string]interface{})["activities"].([]interface{})
	require.Len(t, activities, 3)
	types := make([]string, len(activities))
	for i, raw := range activities {
		types[i] = raw.(map[string]interface{})["activity_type"].(string)
	}
	assert.Equal(t, []string{"registration", "login", "prediction_generated"}, types)

	last := activities[2].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "BTC/USD", last["asset"])

	// Logout retires the token
	rec, _ = doRequest(t, s, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/auth/validate", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDemoFlow(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/auth/demo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].(map[string]interface{})
	token := data["token"].(string)
	sessData := data["session"].(map[string]interface{})
	assert.Equal(t, models.DemoUsername, sessData["username"])
	assert.Equal(t, true, sessData["is_demo"])

	// Demo sessions can generate predictions
	rec, _ = doRequest(t, s, http.MethodPost, "/api/predictions", token, map[string]interface{}{
		"market":            "Stocks",
		"asset":             "AAPL",
		"horizon":           "1 Week",
		"investment_amount": 500,
		"risk_level":        "Low",
		"model":             "XGBoost",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// But nothing is ever persisted for the demo identity
	rec, resp = doRequest(t, s, http.MethodGet, "/api/users/demo_user/activity", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, resp["data"].(map[string]interface{})["count"])

	rec, _ = doRequest(t, s, http.MethodGet, "/api/users/demo_user", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, s, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPredictionRequiresSession(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodPost, "/api/predictions", "", map[string]interface{}{
		"market": "Stocks",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, s, http.MethodPost, "/api/predictions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPredictionInvalidParams(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice")

	rec, resp := doRequest(t, s, http.MethodPost, "/api/predictions", token, map[string]interface{}{
		"market":            "Stocks",
		"asset":             "AAPL",
		"horizon":           "1 Day",
		"investment_amount": 5,
		"risk_level":        "Medium",
		"model":             "XGBoost",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "investment_amount")
}

func TestUserProfileEndpoint(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	rec, resp := doRequest(t, s, http.MethodGet, "/api/users/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", data["email"])
	assert.NotContains(t, data, "password_hash")
	// last_login is never refreshed, so it stays absent
	assert.NotContains(t, data, "last_login")

	rec, _ = doRequest(t, s, http.MethodGet, "/api/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/users/", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivityLimitParam(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice")

	rec, resp := doRequest(t, s, http.MethodGet, "/api/users/alice/activity?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	activities := resp["data"].(map[string]interface{})["activities"].([]interface{})
	require.Len(t, activities, 1)
	// Most recent entry wins
	assert.Equal(t, "login", activities[0].(map[string]interface{})["activity_type"])

	rec, _ = doRequest(t, s, http.MethodGet, "/api/users/alice/activity?limit=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodDelete, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))

	rec, _ = doRequest(t, s, http.MethodPost, "/api/catalog", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
