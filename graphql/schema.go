// Package graphql assembles the root query schema from the query modules.
package graphql

import (
	gql "github.com/graphql-go/graphql"

	"github.com/vulnmgt/scoring-backend/database"
	"github.com/vulnmgt/scoring-backend/graphql/modules/assessments"
)

var db database.DBConnection

// InitDB stores the database connection used by the resolvers
func InitDB(conn database.DBConnection) {
	db = conn
}

// CreateSchema builds the root query schema from the module query fields
func CreateSchema() (gql.Schema, error) {
	fields := gql.Fields{}

	for name, field := range assessments.GetQueryFields(db) {
		fields[name] = field
	}

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return gql.NewSchema(gql.SchemaConfig{
		Query: rootQuery,
	})
}
