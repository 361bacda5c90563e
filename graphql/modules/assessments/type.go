// Package assessments defines the GraphQL types for stored assessments.
package assessments

import (
	"github.com/graphql-go/graphql"
)

// MetricAssignmentType represents one metric name/value pair of an assessment
var MetricAssignmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MetricAssignment",
	Fields: graphql.Fields{
		"name":  &graphql.Field{Type: graphql.String},
		"value": &graphql.Field{Type: graphql.String},
	},
})

// AssessmentType represents a stored assessment: the CVE, the affected
// package, and the computed scores
var AssessmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Assessment",
	Fields: graphql.Fields{
		"cve_id":              &graphql.Field{Type: graphql.String},
		"summary":             &graphql.Field{Type: graphql.String},
		"package_purl":        &graphql.Field{Type: graphql.String},
		"package_version":     &graphql.Field{Type: graphql.String},
		"metrics":             &graphql.Field{Type: graphql.NewList(MetricAssignmentType)},
		"base_score":          &graphql.Field{Type: graphql.Float},
		"temporal_score":      &graphql.Field{Type: graphql.Float},
		"environmental_score": &graphql.Field{Type: graphql.Float},
		"severity_rating":     &graphql.Field{Type: graphql.String},
		"created_at":          &graphql.Field{Type: graphql.String},
		"updated_at":          &graphql.Field{Type: graphql.String},
	},
})

// SeverityDistributionType represents the assessment counts per severity rating
var SeverityDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SeverityDistribution",
	Fields: graphql.Fields{
		"none":     &graphql.Field{Type: graphql.Int},
		"low":      &graphql.Field{Type: graphql.Int},
		"medium":   &graphql.Field{Type: graphql.Int},
		"high":     &graphql.Field{Type: graphql.Int},
		"critical": &graphql.Field{Type: graphql.Int},
	},
})
