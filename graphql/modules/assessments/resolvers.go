// Package assessments implements the resolvers for assessment queries.
package assessments

import (
	"context"
	"sort"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/vulnmgt/scoring-backend/database"
	"github.com/vulnmgt/scoring-backend/model"
)

// assessmentToMap flattens an assessment for the GraphQL field resolvers,
// turning the metric mapping into a name-sorted list of assignments.
func assessmentToMap(a model.Assessment) map[string]interface{} {
	names := make([]string, 0, len(a.Metrics))
	for name := range a.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	metrics := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		metrics = append(metrics, map[string]interface{}{
			"name":  name,
			"value": a.Metrics[name],
		})
	}

	out := map[string]interface{}{
		"cve_id":          a.CveID,
		"summary":         a.Summary,
		"package_purl":    a.PackagePurl,
		"package_version": a.PackageVersion,
		"metrics":         metrics,
		"base_score":      a.BaseScore,
		"severity_rating": a.SeverityRating,
		"created_at":      a.CreatedAt.Format(time.RFC3339),
		"updated_at":      a.UpdatedAt.Format(time.RFC3339),
	}
	if a.TemporalScore != nil {
		out["temporal_score"] = *a.TemporalScore
	}
	if a.EnvironmentalScore != nil {
		out["environmental_score"] = *a.EnvironmentalScore
	}
	return out
}

// ResolveAssessments lists stored assessments ordered by base score, optionally
// filtered by severity rating
func ResolveAssessments(db database.DBConnection, severity string, limit int) (interface{}, error) {
	ctx := context.Background()

	query := `
		FOR a IN assessment
	`
	bindVars := map[string]interface{}{
		"limit": limit,
	}

	if severity != "" {
		query += `	FILTER a.severity_rating == @severity
	`
		bindVars["severity"] = severity
	}

	query += `	SORT a.base_score DESC
			LIMIT @limit
			RETURN a`

	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	results := make([]map[string]interface{}, 0)
	for cursor.HasMore() {
		var assessment model.Assessment
		if _, err := cursor.ReadDocument(ctx, &assessment); err != nil {
			return nil, err
		}
		results = append(results, assessmentToMap(assessment))
	}

	return results, nil
}

// ResolveAssessment fetches the most recently updated assessment for one CVE
func ResolveAssessment(db database.DBConnection, cveID string) (interface{}, error) {
	ctx := context.Background()

	query := `
		FOR a IN assessment
			FILTER a.cve_id == @cve_id
			SORT a.updated_at DESC
			LIMIT 1
			RETURN a
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"cve_id": cveID,
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var assessment model.Assessment
	if _, err := cursor.ReadDocument(ctx, &assessment); err != nil {
		return nil, err
	}

	return assessmentToMap(assessment), nil
}

// ResolveSeverityDistribution counts stored assessments per severity rating
func ResolveSeverityDistribution(db database.DBConnection) (interface{}, error) {
	ctx := context.Background()

	query := `
		FOR a IN assessment
			COLLECT severity = a.severity_rating WITH COUNT INTO total
			RETURN { severity: severity, total: total }
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	distribution := map[string]interface{}{
		"none":     0,
		"low":      0,
		"medium":   0,
		"high":     0,
		"critical": 0,
	}

	for cursor.HasMore() {
		var row struct {
			Severity string `json:"severity"`
			Total    int    `json:"total"`
		}
		if _, err := cursor.ReadDocument(ctx, &row); err != nil {
			return nil, err
		}

		switch row.Severity {
		case "NONE":
			distribution["none"] = row.Total
		case "LOW":
			distribution["low"] = row.Total
		case "MEDIUM":
			distribution["medium"] = row.Total
		case "HIGH":
			distribution["high"] = row.Total
		case "CRITICAL":
			distribution["critical"] = row.Total
		}
	}

	return distribution, nil
}
