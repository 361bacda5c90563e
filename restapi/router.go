// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/vulnmgt/scoring-backend/database"
	"github.com/vulnmgt/scoring-backend/restapi/modules/assessments"
	"github.com/vulnmgt/scoring-backend/restapi/modules/scores"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, db database.DBConnection, schema graphql.Schema) {

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Stateless scoring
	api.Get("/metrics", scores.GetMetricTable())
	api.Post("/scores", scores.PostScore())

	// Stored assessments
	api.Post("/assessments", assessments.PostAssessment(db))
	api.Post("/assessments/import", assessments.ImportAssessments(db))
	api.Get("/assessments", assessments.GetAssessments(db))
	api.Get("/assessments/:cveid", assessments.GetAssessment(db))

	log.Println("API routes initialized successfully")
}
