package journal

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petrijr/stato/pkg/api"
)

// RedisJournal is a Journal backed by Redis.
// It uses a simple key structure:
//
//	<prefix>log:<machineID> => LIST of gob-encoded redisRecordPayload
//
// Records are appended with RPUSH, so LRANGE returns them in append order.
// The journal is append-only; it never trims or expires its lists.
type RedisJournal struct {
	client *redis.Client
	prefix string
}

var _ api.Journal = (*RedisJournal)(nil)

type redisRecordPayload struct {
	MachineID string
	At        int64
	Type      string
	Model     string
	From      string
	To        string
	Detail    string
}

// NewRedisJournal creates a RedisJournal.
// prefix is optional but recommended (e.g. "stato:").
func NewRedisJournal(client *redis.Client, prefix string) *RedisJournal {
	if prefix == "" {
		prefix = "stato:"
	}
	return &RedisJournal{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisJournal) keyLog(machineID string) string {
	return r.prefix + "log:" + machineID
}

func (r *RedisJournal) Append(ctx context.Context, rec api.TransitionRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	data, err := encodeRedisRecord(rec)
	if err != nil {
		return err
	}

	return r.client.RPush(ctx, r.keyLog(rec.MachineID), data).Err()
}

func (r *RedisJournal) List(ctx context.Context, machineID string) ([]api.TransitionRecord, error) {
	raw, err := r.client.LRange(ctx, r.keyLog(machineID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	records := make([]api.TransitionRecord, 0, len(raw))
	for _, item := range raw {
		rec, err := decodeRedisRecord([]byte(item))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeRedisRecord(rec api.TransitionRecord) ([]byte, error) {
	payload := redisRecordPayload{
		MachineID: rec.MachineID,
		At:        rec.At.UnixNano(),
		Type:      string(rec.Type),
		Model:     rec.Model,
		From:      string(rec.From),
		To:        string(rec.To),
		Detail:    rec.Detail,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRedisRecord(data []byte) (api.TransitionRecord, error) {
	var payload redisRecordPayload
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&payload); err != nil {
		return api.TransitionRecord{}, err
	}

	return api.TransitionRecord{
		MachineID: payload.MachineID,
		At:        time.Unix(0, payload.At),
		Type:      api.RecordType(payload.Type),
		Model:     payload.Model,
		From:      api.State(payload.From),
		To:        api.State(payload.To),
		Detail:    payload.Detail,
	}, nil
}
