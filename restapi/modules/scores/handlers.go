// Package scores implements the stateless scoring endpoints: compute scores
// from a metric payload and expose the metric table.
package scores

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vulnmgt/scoring-backend/cvss"
	"github.com/vulnmgt/scoring-backend/util"
)

// ScoreRequest is the body of POST /scores: a flat mapping of metric names to
// metric values.
type ScoreRequest struct {
	Metrics map[string]interface{} `json:"metrics"`
}

// errorKind maps an engine error to the kind string reported to clients.
func errorKind(err error) string {
	switch {
	case errors.Is(err, cvss.ErrUnknownMetric):
		return "unknown_metric"
	case errors.Is(err, cvss.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, cvss.ErrMissingMetric):
		return "missing_metric"
	case errors.Is(err, cvss.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}

// ComputeScores runs the scoring engine over a metric payload. The Base
// metrics are mandatory; Temporal and Environmental scores are included only
// when their metric groups are fully assigned.
func ComputeScores(metrics map[string]interface{}) (fiber.Map, error) {
	engine, err := cvss.NewFromValues(metrics)
	if err != nil {
		return nil, err
	}

	base, err := engine.BaseScore()
	if err != nil {
		return nil, err
	}

	result := fiber.Map{
		"metrics":         engine.Assigned(),
		"base_score":      base,
		"severity_rating": util.GetSeverityRating(base),
	}

	if temporal, err := engine.TemporalScore(); err == nil {
		result["temporal_score"] = temporal
	} else if !errors.Is(err, cvss.ErrMissingMetric) {
		return nil, err
	}

	if environmental, err := engine.EnvironmentalScore(); err == nil {
		result["environmental_score"] = environmental
	} else if !errors.Is(err, cvss.ErrMissingMetric) {
		return nil, err
	}

	return result, nil
}

// PostScore handles POST requests for computing scores without storing anything
func PostScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ScoreRequest

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body: " + err.Error(),
			})
		}

		if len(req.Metrics) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "metrics is required",
			})
		}

		result, err := ComputeScores(req.Metrics)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   errorKind(err),
				"message": err.Error(),
			})
		}

		result["success"] = true
		return c.JSON(result)
	}
}

// GetMetricTable handles GET requests for the metric table: every metric, its
// group, and its allowed values with their weights
func GetMetricTable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defs := cvss.Definitions()
		table := make([]fiber.Map, 0, len(defs))

		for _, def := range defs {
			table = append(table, fiber.Map{
				"name":   def.Name,
				"group":  cvss.GroupOf(def.Name),
				"values": def.Weights,
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"metrics": table,
		})
	}
}
