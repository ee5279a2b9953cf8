package storage

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Collection names used across the backend.
const (
	CollUsers        = "users"
	CollHabits       = "habits"
	CollAffirmations = "affirmations"
	CollWater        = "water"
	CollExercises    = "exercises"
	CollExams        = "exams"
	CollAssignments  = "assignments"
	CollCourses      = "courses"
)

// Record is one document as the adapter sees it. The CSV backend stores
// every value as text, so consumers must decode records with DecodeRecord,
// which coerces strings back into numbers and booleans.
type Record = map[string]interface{}

// Filter selects records by field equality. An empty or nil filter matches
// everything. The only special key is "id", which each backend maps onto its
// native identity at its own boundary.
type Filter = map[string]interface{}

// DeleteResult reports the count of records removed by a delete operation.
type DeleteResult struct {
	DeletedCount int64
}

// UpdateResult reports the counts of records matched and modified by an
// update operation. UpsertedID is the identity assigned when an upsert
// inserted a new record, empty otherwise.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    string
}

// Store is the uniform create/read/update/delete surface over named
// collections, independent of the backing medium. A missing record is an
// empty result, never an error; handlers decide what absence means.
// Operations are atomic at single-record granularity only.
type Store interface {
	// Finds all records in the collection matching the filter.
	Find(ctx context.Context, collection string, filter Filter) ([]Record, error)
	// Inserts one record and returns its identity, generating one if the
	// record has no "id" field.
	Insert(ctx context.Context, collection string, rec Record) (string, error)
	// Inserts a batch of records, generating identities as needed.
	InsertMany(ctx context.Context, collection string, recs []Record) error
	// Applies the patch to the first record matching the filter. With upsert
	// set, a missing record is created from the filter plus the patch.
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Record, upsert bool) (*UpdateResult, error)
	// Deletes the first record matching the filter.
	DeleteOne(ctx context.Context, collection string, filter Filter) (*DeleteResult, error)
	// Deletes every record matching the filter.
	DeleteMany(ctx context.Context, collection string, filter Filter) (*DeleteResult, error)
	// Counts the records matching the filter.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	// Disconnects from the storage backend.
	Disconnect() error
}

// NewStore creates a Store for the requested backend: "mongo" needs the URI
// and database name, "csv" needs the data directory.
func NewStore(backend, uri, dbName, dataDir string) (Store, error) {
	switch backend {
	case "mongo":
		store := NewMongoStore()
		if err := store.Connect(dbName, uri); err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return store, nil
	case "csv":
		return NewCSVStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// DecodeRecord decodes a record into an entity struct via its mapstructure
// tags. Decoding is weakly typed: "42" becomes 42 and "true" becomes true,
// which is what makes records read back from CSV usable.
func DecodeRecord(rec Record, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(rec)
}

// DecodeRecords decodes a slice of records into a slice of entity structs.
// out must be a pointer to a slice.
func DecodeRecords(recs []Record, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(recs)
}

// ToRecord converts an entity struct into a record via its mapstructure tags.
func ToRecord(v interface{}) (Record, error) {
	rec := Record{}
	if err := mapstructure.Decode(v, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
