package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// csvColumns fixes the header row for each collection file. Every collection
// carries the adapter identity as its first column. Fields absent from a
// record are written as empty cells; every value is stored as text and
// coerced back on decode.
var csvColumns = map[string][]string{
	CollUsers:        {"id", "username", "email", "password"},
	CollHabits:       {"id", "username", "title", "description"},
	CollAffirmations: {"id", "text"},
	CollWater:        {"id", "username", "bottleName", "bottleOz", "dailyGoal", "currentOz"},
	CollExercises:    {"id", "username", "name", "muscle", "equipment", "compound", "category", "createdByUser"},
	CollExams:        {"id", "username", "course", "date", "planned_hours", "score", "done"},
	CollAssignments:  {"id", "username", "title", "course", "dueDate", "status", "priority", "type", "points"},
	CollCourses:      {"id", "code", "name", "professor"},
}

// CSVStore is a Store backed by one flat file per collection, the earlier
// revision of the persistence layer. Inserts append a single line; updates
// and deletes rewrite the whole file. A mutex makes each operation atomic
// within the process; nothing guards against other processes.
type CSVStore struct {
	dir string
	mu  sync.Mutex
}

// NewCSVStore creates a CSVStore rooted at dir, creating the directory and
// any missing collection files with their header rows.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %v", err)
	}
	s := &CSVStore{dir: dir}
	for coll := range csvColumns {
		path := s.path(coll)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := s.writeFile(coll, nil); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Disconnect is a no-op: the files are closed after every operation.
func (s *CSVStore) Disconnect() error {
	return nil
}

func (s *CSVStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".csv")
}

// readFile loads every record of a collection. All values come back as
// strings; DecodeRecord coerces them into the entity's field types.
func (s *CSVStore) readFile(collection string) ([]Record, error) {
	cols, ok := csvColumns[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	f, err := os.Open(s.path(collection))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec := Record{}
		for j, col := range cols {
			if j < len(row) {
				rec[col] = row[j]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// writeFile rewrites a collection file with its header row and the given
// records.
func (s *CSVStore) writeFile(collection string, records []Record) error {
	cols, ok := csvColumns[collection]
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}

	f, err := os.Create(s.path(collection))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(recordRow(cols, rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// appendRow appends one record to a collection file.
func (s *CSVStore) appendRow(collection string, rec Record) error {
	cols := csvColumns[collection]
	f, err := os.OpenFile(s.path(collection), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(recordRow(cols, rec)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func recordRow(cols []string, rec Record) []string {
	row := make([]string, len(cols))
	for i, col := range cols {
		if v, ok := rec[col]; ok && v != nil {
			row[i] = fmt.Sprint(v)
		}
	}
	return row
}

// matches reports whether a record satisfies every equality in the filter.
// Both sides are compared as text since that is all the file format keeps.
func matches(rec Record, filter Filter) bool {
	for k, want := range filter {
		got, ok := rec[k]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// Find returns all records in the collection matching the filter.
func (s *CSVStore) Find(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readFile(collection)
	if err != nil {
		return nil, err
	}
	out := []Record{}
	for _, rec := range records {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Insert appends one record to the collection and returns its identity.
func (s *CSVStore) Insert(ctx context.Context, collection string, rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(collection, rec)
}

func (s *CSVStore) insertLocked(collection string, rec Record) (string, error) {
	if _, ok := csvColumns[collection]; !ok {
		return "", fmt.Errorf("unknown collection %q", collection)
	}
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	stored := Record{}
	for k, v := range rec {
		stored[k] = v
	}
	stored["id"] = id
	if err := s.appendRow(collection, stored); err != nil {
		return "", err
	}
	return id, nil
}

// InsertMany appends a batch of records to the collection.
func (s *CSVStore) InsertMany(ctx context.Context, collection string, recs []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range recs {
		if _, err := s.insertLocked(collection, rec); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOne applies the patch to the first record matching the filter,
// rewriting the file. With upsert set, a missing record is created from the
// filter plus the patch.
func (s *CSVStore) UpdateOne(ctx context.Context, collection string, filter Filter, patch Record, upsert bool) (*UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readFile(collection)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if !matches(rec, filter) {
			continue
		}
		for k, v := range patch {
			if k == "id" {
				continue // identity is never patched
			}
			rec[k] = v
		}
		if err := s.writeFile(collection, records); err != nil {
			return nil, err
		}
		return &UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	if !upsert {
		return &UpdateResult{}, nil
	}

	fresh := Record{}
	for k, v := range filter {
		fresh[k] = v
	}
	for k, v := range patch {
		if k != "id" {
			fresh[k] = v
		}
	}
	id, err := s.insertLocked(collection, fresh)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{UpsertedID: id}, nil
}

// DeleteOne removes the first record matching the filter.
func (s *CSVStore) DeleteOne(ctx context.Context, collection string, filter Filter) (*DeleteResult, error) {
	return s.delete(collection, filter, true)
}

// DeleteMany removes every record matching the filter.
func (s *CSVStore) DeleteMany(ctx context.Context, collection string, filter Filter) (*DeleteResult, error) {
	return s.delete(collection, filter, false)
}

func (s *CSVStore) delete(collection string, filter Filter, firstOnly bool) (*DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readFile(collection)
	if err != nil {
		return nil, err
	}

	kept := []Record{}
	var deleted int64
	for _, rec := range records {
		if matches(rec, filter) && (!firstOnly || deleted == 0) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	if deleted == 0 {
		return &DeleteResult{}, nil
	}
	if err := s.writeFile(collection, kept); err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: deleted}, nil
}

// Count returns the number of records in the collection matching the filter.
func (s *CSVStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readFile(collection)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, rec := range records {
		if matches(rec, filter) {
			n++
		}
	}
	return n, nil
}
