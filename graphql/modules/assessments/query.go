// Package assessments defines the GraphQL queries for stored assessments.
package assessments

import (
	"github.com/graphql-go/graphql"

	"github.com/vulnmgt/scoring-backend/database"
)

// GetQueryFields returns the assessment queries to be mounted in the root schema
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		// Stored assessments ordered by base score
		"assessments": &graphql.Field{
			Type: graphql.NewList(AssessmentType),
			Args: graphql.FieldConfigArgument{
				"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				"severity": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				severity := p.Args["severity"].(string)
				return ResolveAssessments(db, severity, limit)
			},
		},
		// Most recent assessment for one CVE
		"assessment": &graphql.Field{
			Type: AssessmentType,
			Args: graphql.FieldConfigArgument{
				"cve_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				cveID := p.Args["cve_id"].(string)
				return ResolveAssessment(db, cveID)
			},
		},
		// Assessment counts per severity rating
		"severityDistribution": &graphql.Field{
			Type: SeverityDistributionType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveSeverityDistribution(db)
			},
		},
	}
}
