package journal

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/stato/pkg/api"
)

// MongoJournal is a Journal backed by MongoDB.
//
// Each record becomes one document. Driver-generated ObjectIDs are monotonic
// for documents inserted from a single process, so List sorts by _id
// ascending to return records in append order.
type MongoJournal struct {
	coll *mongo.Collection
}

var _ api.Journal = (*MongoJournal)(nil)

type mongoRecordDoc struct {
	MachineID string `bson:"machine_id"`
	At        int64  `bson:"at"`
	Type      string `bson:"type"`
	Model     string `bson:"model,omitempty"`
	From      string `bson:"from_state,omitempty"`
	To        string `bson:"to_state,omitempty"`
	Detail    string `bson:"detail,omitempty"`
}

// NewMongoJournal creates a Mongo-backed journal.
// dbName defaults to "stato" if empty, collName defaults to "transition_records".
func NewMongoJournal(client *mongo.Client, dbName, collName string) *MongoJournal {
	if dbName == "" {
		dbName = "stato"
	}
	if collName == "" {
		collName = "transition_records"
	}

	return &MongoJournal{
		coll: client.Database(dbName).Collection(collName),
	}
}

func (j *MongoJournal) Append(ctx context.Context, rec api.TransitionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	doc := mongoRecordDoc{
		MachineID: rec.MachineID,
		At:        at.UnixNano(),
		Type:      string(rec.Type),
		Model:     rec.Model,
		From:      string(rec.From),
		To:        string(rec.To),
		Detail:    rec.Detail,
	}

	_, err := j.coll.InsertOne(ctx, doc)
	return err
}

func (j *MongoJournal) List(ctx context.Context, machineID string) ([]api.TransitionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := j.coll.Find(ctx, bson.M{"machine_id": machineID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []api.TransitionRecord

	for cur.Next(ctx) {
		var doc mongoRecordDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}

		records = append(records, api.TransitionRecord{
			MachineID: doc.MachineID,
			At:        time.Unix(0, doc.At),
			Type:      api.RecordType(doc.Type),
			Model:     doc.Model,
			From:      api.State(doc.From),
			To:        api.State(doc.To),
			Detail:    doc.Detail,
		})
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
