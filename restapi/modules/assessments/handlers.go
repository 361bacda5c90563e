// Package assessments implements the REST API handlers for stored
// vulnerability assessments: scored metric assignments tied to a CVE and an
// affected package.
package assessments

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v2"

	"github.com/vulnmgt/scoring-backend/cvss"
	"github.com/vulnmgt/scoring-backend/database"
	"github.com/vulnmgt/scoring-backend/model"
	"github.com/vulnmgt/scoring-backend/util"
)

// BuildAssessment scores the request metrics and assembles the document to
// store. The Base metrics are mandatory; Temporal and Environmental scores are
// recorded only when their metric groups are fully assigned.
func BuildAssessment(req AssessmentRequest) (*model.Assessment, error) {
	if util.IsEmpty(req.CveID) {
		return nil, fmt.Errorf("cve_id is required")
	}

	engine, err := cvss.NewFromValues(req.Metrics)
	if err != nil {
		return nil, err
	}

	base, err := engine.BaseScore()
	if err != nil {
		return nil, err
	}

	assessment := model.NewAssessment()
	assessment.CveID = req.CveID
	assessment.Summary = req.Summary
	assessment.PackagePurl = req.PackagePurl
	assessment.PackageVersion = req.PackageVersion
	assessment.Metrics = engine.Assigned()
	assessment.BaseScore = base
	assessment.SeverityRating = util.GetSeverityRating(base)

	if temporal, err := engine.TemporalScore(); err == nil {
		assessment.TemporalScore = &temporal
	} else if !errors.Is(err, cvss.ErrMissingMetric) {
		return nil, err
	}

	if environmental, err := engine.EnvironmentalScore(); err == nil {
		assessment.EnvironmentalScore = &environmental
	} else if !errors.Is(err, cvss.ErrMissingMetric) {
		return nil, err
	}

	if err := assessment.NormalizePackage(); err != nil {
		return nil, fmt.Errorf("invalid package_purl: %w", err)
	}

	return assessment, nil
}

// PostAssessment handles POST requests for scoring and storing one assessment.
// Repeated posts for the same CVE and package update the stored document.
func PostAssessment(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AssessmentRequest

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body: " + err.Error(),
			})
		}

		assessment, err := BuildAssessment(req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		key, existed, err := database.SaveAssessment(context.Background(), db, assessment)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to save assessment: " + err.Error(),
			})
		}

		status := fiber.StatusCreated
		if existed {
			status = fiber.StatusOK
		}

		return c.Status(status).JSON(fiber.Map{
			"success":    true,
			"key":        key,
			"updated":    existed,
			"assessment": assessment,
		})
	}
}

// GetAssessments handles GET requests for listing assessments, optionally
// filtered by severity rating and capped by a limit query parameter.
func GetAssessments(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 100
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"message": "limit must be a positive integer",
				})
			}
			limit = parsed
		}

		query := `
			FOR a IN assessment
		`
		bindVars := map[string]interface{}{
			"limit": limit,
		}

		if severity := c.Query("severity"); severity != "" {
			query += `	FILTER a.severity_rating == @severity
		`
			bindVars["severity"] = severity
		}

		query += `	SORT a.base_score DESC
				LIMIT @limit
				RETURN a`

		assessments, err := queryAssessments(context.Background(), db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to query assessments: " + err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"count":       len(assessments),
			"assessments": assessments,
		})
	}
}

// GetAssessment handles GET requests for all assessments of one CVE.
func GetAssessment(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cveID := c.Params("cveid")

		query := `
			FOR a IN assessment
				FILTER a.cve_id == @cve_id
				SORT a.package_purl ASC
				RETURN a
		`
		bindVars := map[string]interface{}{
			"cve_id": cveID,
		}

		assessments, err := queryAssessments(context.Background(), db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to query assessments: " + err.Error(),
			})
		}

		if len(assessments) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "No assessments found for " + cveID,
			})
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"cve_id":      cveID,
			"count":       len(assessments),
			"assessments": assessments,
		})
	}
}

// ImportAssessments handles POST requests for importing a YAML batch of
// assessments. Entries are processed independently; a batch with failures
// returns 207 with a per-entry result list.
func ImportAssessments(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload ImportPayload

		if err := yaml.Unmarshal(c.Body(), &payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid YAML body: " + err.Error(),
			})
		}

		if len(payload.Assessments) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "at least one assessment must be provided",
			})
		}

		ctx := context.Background()
		results := make([]ImportResult, 0, len(payload.Assessments))
		failed := 0

		for _, req := range payload.Assessments {
			result := ImportResult{CveID: req.CveID, PackagePurl: req.PackagePurl}

			assessment, err := BuildAssessment(req)
			if err != nil {
				result.Status = "error"
				result.Message = err.Error()
				failed++
				results = append(results, result)
				continue
			}

			key, existed, err := database.SaveAssessment(ctx, db, assessment)
			if err != nil {
				result.Status = "error"
				result.Message = err.Error()
				failed++
				results = append(results, result)
				continue
			}

			result.Key = key
			result.PackagePurl = assessment.PackagePurl
			if existed {
				result.Status = "updated"
			} else {
				result.Status = "created"
			}
			results = append(results, result)
		}

		status := fiber.StatusOK
		if failed > 0 {
			status = fiber.StatusMultiStatus
		}

		return c.Status(status).JSON(fiber.Map{
			"success":   failed == 0,
			"processed": len(results),
			"failed":    failed,
			"results":   results,
		})
	}
}

// queryAssessments runs an AQL query and collects the resulting documents.
func queryAssessments(ctx context.Context, db database.DBConnection, query string, bindVars map[string]interface{}) ([]model.Assessment, error) {
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	assessments := make([]model.Assessment, 0)
	for cursor.HasMore() {
		var assessment model.Assessment
		if _, err := cursor.ReadDocument(ctx, &assessment); err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}

	return assessments, nil
}
