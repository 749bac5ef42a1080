package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/stato/pkg/api"
)

// PostgresJournal is a Journal backed by PostgreSQL.
//
// It expects an *sql.DB that uses a PostgreSQL driver (for example,
// "github.com/jackc/pgx/v5/stdlib" or "github.com/lib/pq").
//
// The caller is responsible for:
//   - importing the driver for its side effects, e.g.:
//     _ "github.com/jackc/pgx/v5/stdlib"
//   - providing a DSN via sql.Open.
type PostgresJournal struct {
	db *sql.DB
}

var _ api.Journal = (*PostgresJournal)(nil)

// NewPostgresJournal initializes the required schema in the given database
// and returns a new PostgresJournal.
func NewPostgresJournal(db *sql.DB) (*PostgresJournal, error) {
	j := &PostgresJournal{db: db}
	if err := j.initSchema(); err != nil {
		return nil, err
	}
	return j, nil
}

func (p *PostgresJournal) initSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS transition_records (
			id BIGSERIAL PRIMARY KEY,
			machine_id TEXT NOT NULL,
			at BIGINT NOT NULL,
			type TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			from_state TEXT NOT NULL DEFAULT '',
			to_state TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transition_records_machine
		ON transition_records (machine_id, id);
	`)
	return err
}

func (p *PostgresJournal) Append(ctx context.Context, rec api.TransitionRecord) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO transition_records (machine_id, at, type, model, from_state, to_state, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		rec.MachineID,
		at.UnixNano(),
		string(rec.Type),
		rec.Model,
		string(rec.From),
		string(rec.To),
		rec.Detail,
	)
	return err
}

func (p *PostgresJournal) List(ctx context.Context, machineID string) ([]api.TransitionRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT machine_id, at, type, model, from_state, to_state, detail
		FROM transition_records
		WHERE machine_id = $1
		ORDER BY id ASC
	`,
		machineID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []api.TransitionRecord

	for rows.Next() {
		var rec api.TransitionRecord
		var at int64
		var typ, model, from, to string

		if err := rows.Scan(&rec.MachineID, &at, &typ, &model, &from, &to, &rec.Detail); err != nil {
			return nil, err
		}

		rec.At = time.Unix(0, at)
		rec.Type = api.RecordType(typ)
		rec.Model = model
		rec.From = api.State(from)
		rec.To = api.State(to)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
