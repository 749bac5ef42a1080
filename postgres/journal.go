// Package postgres provides a PostgreSQL-backed transition journal for stato.
package postgres

import (
	"database/sql"

	"github.com/petrijr/stato/pkg/api"

	pjournal "github.com/petrijr/stato/postgres/internal/journal"
)

// NewJournal initializes the journal schema in the given database and returns
// a Journal that appends transition records to PostgreSQL.
//
// It expects an *sql.DB opened with a PostgreSQL driver (for example,
// "github.com/jackc/pgx/v5/stdlib"); the caller imports the driver for its
// side effects and provides a DSN via sql.Open. Pass the result to a machine
// via stato.WithJournal.
func NewJournal(db *sql.DB) (api.Journal, error) {
	return pjournal.NewPostgresJournal(db)
}
