// Package mongo provides a MongoDB-backed transition journal for stato.
package mongo

import (
	"github.com/petrijr/stato/pkg/api"
	"go.mongodb.org/mongo-driver/mongo"

	mjournal "github.com/petrijr/stato/mongo/internal/journal"
)

// NewJournal returns a Journal that appends transition records to MongoDB.
//
// dbName defaults to "stato" if empty, collName defaults to
// "transition_records". Pass the result to a machine via stato.WithJournal.
func NewJournal(client *mongo.Client, dbName, collName string) api.Journal {
	return mjournal.NewMongoJournal(client, dbName, collName)
}
