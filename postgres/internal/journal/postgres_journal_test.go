package journal

import (
	"context"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/petrijr/stato/pkg/api"
)

func (p *PostgresJournalTestSuite) TestPostgresJournal_AppendAndList() {
	ctx := context.Background()
	base := time.Now().Truncate(time.Millisecond)

	records := []api.TransitionRecord{
		{
			MachineID: "pg-m1",
			At:        base,
			Type:      api.RecordMachineStarted,
			Model:     "door",
			To:        "locked",
		},
		{
			MachineID: "pg-m1",
			At:        base.Add(time.Millisecond),
			Type:      api.RecordTransitionCompleted,
			Model:     "door",
			From:      "locked",
			To:        "unlocked",
		},
		{
			MachineID: "pg-m1",
			At:        base.Add(2 * time.Millisecond),
			Type:      api.RecordTransitionFaulted,
			Model:     "door",
			From:      "unlocked",
			To:        "open",
			Detail:    "entry action for state \"open\" failed",
		},
	}

	for _, rec := range records {
		err := p.journal.Append(ctx, rec)
		p.NoErrorf(err, "Append(%s) failed: %v", rec.Type, err)
	}

	got, err := p.journal.List(ctx, "pg-m1")
	p.NoErrorf(err, "List failed: %v", err)

	if len(got) != len(records) {
		p.Failf("incorrect record count", "expected %d records, got %d", len(records), len(got))
	}

	for i, rec := range records {
		if got[i].MachineID != rec.MachineID || got[i].Type != rec.Type || got[i].Model != rec.Model {
			p.Failf("unexpected record", "unexpected record at %d: %+v", i, got[i])
		}
		if got[i].From != rec.From || got[i].To != rec.To || got[i].Detail != rec.Detail {
			p.Failf("unexpected record", "unexpected transition fields at %d: %+v", i, got[i])
		}
		if !got[i].At.Equal(rec.At) {
			p.Failf("timestamp mismatch", "at %d: want %v, got %v", i, rec.At, got[i].At)
		}
	}
}

func (p *PostgresJournalTestSuite) TestPostgresJournal_ListUnknownMachineIsEmpty() {
	ctx := context.Background()

	got, err := p.journal.List(ctx, "never-seen")
	p.NoErrorf(err, "List failed: %v", err)

	if len(got) != 0 {
		p.Failf("unexpected records", "expected no records, got %d", len(got))
	}
}

func (p *PostgresJournalTestSuite) TestPostgresJournal_MachinesAreIsolated() {
	ctx := context.Background()

	for _, id := range []string{"pg-iso-a", "pg-iso-b"} {
		err := p.journal.Append(ctx, api.TransitionRecord{
			MachineID: id,
			Type:      api.RecordMachineStarted,
			Model:     "door",
			To:        "locked",
		})
		p.NoErrorf(err, "Append(%s) failed: %v", id, err)
	}

	gotA, err := p.journal.List(ctx, "pg-iso-a")
	p.NoErrorf(err, "List(pg-iso-a) failed: %v", err)
	if len(gotA) != 1 || gotA[0].MachineID != "pg-iso-a" {
		p.Failf("unexpected records", "machine a should only see its own records: %+v", gotA)
	}

	gotB, err := p.journal.List(ctx, "pg-iso-b")
	p.NoErrorf(err, "List(pg-iso-b) failed: %v", err)
	if len(gotB) != 1 || gotB[0].MachineID != "pg-iso-b" {
		p.Failf("unexpected records", "machine b should only see its own records: %+v", gotB)
	}
}

func (p *PostgresJournalTestSuite) TestPostgresJournal_ZeroTimestampIsFilled() {
	ctx := context.Background()

	err := p.journal.Append(ctx, api.TransitionRecord{
		MachineID: "pg-zero-at",
		Type:      api.RecordMachineStarted,
		Model:     "door",
		To:        "locked",
	})
	p.NoErrorf(err, "Append failed: %v", err)

	got, err := p.journal.List(ctx, "pg-zero-at")
	p.NoErrorf(err, "List failed: %v", err)

	if len(got) != 1 {
		p.Failf("incorrect record count", "expected 1 record, got %d", len(got))
	}
	if got[0].At.IsZero() {
		p.Failf("timestamp missing", "journal should fill a missing timestamp: %+v", got[0])
	}
}
