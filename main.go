// Package main provides the entry point for the scoring-backend microservice:
// a CVSS v1 scoring engine with stored assessments served over REST and GraphQL.
package main

import (
	"log"

	"github.com/vulnmgt/scoring-backend/database"
	"github.com/vulnmgt/scoring-backend/internal/api"
	"github.com/vulnmgt/scoring-backend/util"
)

func main() {
	// Initialize database connection
	db := database.InitializeDatabase()

	// Create Fiber app with REST and GraphQL routes
	app := api.NewFiberApp(db)

	port := util.GetEnvDefault("MS_PORT", "3000")

	// Start server
	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
