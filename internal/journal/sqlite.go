package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/stato/pkg/api"
)

// SQLite stores transition records in a SQLite database.
// The caller owns the *sql.DB and is expected to have opened it with a
// SQLite driver such as modernc.org/sqlite.
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements the interface.
var _ api.Journal = (*SQLite)(nil)

// NewSQLite creates the journal table if needed and returns a journal
// writing to db.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	j := &SQLite{db: db}
	if err := j.initSchema(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *SQLite) initSchema() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS transition_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			machine_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			from_state TEXT NOT NULL DEFAULT '',
			to_state TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_transition_records_machine_id ON transition_records(machine_id, id);
	`)
	return err
}

func (j *SQLite) Append(ctx context.Context, rec api.TransitionRecord) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO transition_records (machine_id, at, type, model, from_state, to_state, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
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

func (j *SQLite) List(ctx context.Context, machineID string) ([]api.TransitionRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT machine_id, at, type, model, from_state, to_state, detail
		FROM transition_records
		WHERE machine_id = ?
		ORDER BY id ASC`, machineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.TransitionRecord
	for rows.Next() {
		var (
			machID string
			atN    int64
			typ    string
			model  string
			from   string
			to     string
			detail string
		)
		if err := rows.Scan(&machID, &atN, &typ, &model, &from, &to, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.TransitionRecord{
			MachineID: machID,
			At:        time.Unix(0, atN),
			Type:      api.RecordType(typ),
			Model:     model,
			From:      api.State(from),
			To:        api.State(to),
			Detail:    detail,
		})
	}
	return out, rows.Err()
}
