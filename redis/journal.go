// Package redis provides a Redis-backed transition journal for stato.
package redis

import (
	"github.com/petrijr/stato/pkg/api"
	"github.com/redis/go-redis/v9"

	rjournal "github.com/petrijr/stato/redis/internal/journal"
)

// NewJournal returns a Journal that appends transition records to Redis.
//
// prefix namespaces all keys written by the journal (e.g. "stato:"); it
// defaults to "stato:" when empty. Pass the result to a machine via
// stato.WithJournal.
func NewJournal(client *redis.Client, prefix string) api.Journal {
	return rjournal.NewRedisJournal(client, prefix)
}
