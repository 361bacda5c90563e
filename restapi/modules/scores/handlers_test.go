package scores

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/scores", PostScore())
	app.Get("/metrics", GetMetricTable())
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestPostScoreBaseOnly(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{
		Metrics: map[string]interface{}{
			"AccessVector":          "Remote",
			"AccessComplexity":      "Low",
			"Authentication":        "Not-Required",
			"ConfidentialityImpact": "None",
			"IntegrityImpact":       "None",
			"AvailabilityImpact":    "Complete",
			"ImpactBias":            "Availability",
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 5.0, body["base_score"])
	assert.Equal(t, "MEDIUM", body["severity_rating"])
	assert.NotContains(t, body, "temporal_score")
	assert.NotContains(t, body, "environmental_score")

	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, "remote", metrics["AccessVector"])
	assert.Equal(t, "availability", metrics["ImpactBias"])
}

func TestPostScoreAllGroups(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{
		Metrics: map[string]interface{}{
			"AccessVector":              "remote",
			"AccessComplexity":          "low",
			"Authentication":            "not-required",
			"ConfidentialityImpact":     "complete",
			"IntegrityImpact":           "complete",
			"AvailabilityImpact":        "complete",
			"ImpactBias":                "normal",
			"Exploitability":            "functional",
			"RemediationLevel":          "official-fix",
			"ReportConfidence":          "confirmed",
			"CollateralDamagePotential": "none",
			"TargetDistribution":        "none",
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, body["base_score"])
	assert.Equal(t, 8.3, body["temporal_score"])
	assert.Equal(t, 0.0, body["environmental_score"])
	assert.Equal(t, "CRITICAL", body["severity_rating"])
}

func TestPostScoreMissingMetric(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{
		Metrics: map[string]interface{}{
			"AccessVector": "remote",
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "missing_metric", body["error"])
	assert.Contains(t, body["message"], "AccessComplexity")
}

func TestPostScoreUnknownMetric(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{
		Metrics: map[string]interface{}{
			"AttackVector": "remote",
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown_metric", body["error"])
}

func TestPostScoreInvalidValue(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{
		Metrics: map[string]interface{}{
			"AccessVector": "network",
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_value", body["error"])
}

func TestPostScoreNonStringValue(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{
		Metrics: map[string]interface{}{
			"AccessVector": 1.0,
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_argument", body["error"])
}

func TestPostScoreEmptyBody(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/scores", ScoreRequest{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestGetMetricTable(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	metrics := body["metrics"].([]interface{})
	require.Len(t, metrics, 12)

	first := metrics[0].(map[string]interface{})
	assert.Equal(t, "AccessVector", first["name"])
	assert.Equal(t, "base", first["group"])

	values := first["values"].(map[string]interface{})
	assert.Equal(t, 1.0, values["remote"])
	assert.Equal(t, 0.7, values["local"])

	last := metrics[11].(map[string]interface{})
	assert.Equal(t, "TargetDistribution", last["name"])
	assert.Equal(t, "environmental", last["group"])
}
