package journal

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/petrijr/stato/pkg/api"
)

// Memory is a simple, goroutine-safe journal backed by per-machine slices.
// Unlike machines, journals are shared infrastructure and may receive
// appends from many goroutines.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]api.TransitionRecord
}

// NewMemory creates a new in-memory journal.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]api.TransitionRecord),
	}
}

// Ensure Memory implements the interface.
var _ api.Journal = (*Memory)(nil)

func (j *Memory) Append(ctx context.Context, rec api.TransitionRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.records[rec.MachineID] = append(j.records[rec.MachineID], rec)
	return nil
}

func (j *Memory) List(ctx context.Context, machineID string) ([]api.TransitionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	// Copy so callers cannot alias the internal slice.
	return slices.Clone(j.records[machineID]), nil
}
