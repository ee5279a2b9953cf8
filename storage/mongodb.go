package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a Store backed by a MongoDB database. Records map onto
// documents one to one; the application-level "id" field is stored as the
// document's native "_id" and translated back on every read.
type MongoStore struct {
	client *mongo.Client
	dbName string
}

// NewMongoStore creates a new instance of MongoStore.
// This function doesn't establish a connection to the MongoDB server.
// To connect to the server, use the Connect method of the returned instance.
func NewMongoStore() *MongoStore {
	return &MongoStore{}
}

// Connect establishes a connection to the MongoDB server at the given URI
// and sets up indexes and unique constraints as necessary.
// Returns an error if any issues are encountered.
func (m *MongoStore) Connect(dbName, uri string) error {

	// Set a timeout for the connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	m.client = client
	m.dbName = dbName

	// No two users may share a username or an email. The registration
	// handler pre-checks both, but the indexes also speed up lookups.
	usersCollection := m.collection(CollUsers)

	usernameIndexModel := mongo.IndexModel{
		Keys: bson.M{
			"username": 1, // 1 for ascending order
		},
		Options: options.Index().SetUnique(true),
	}

	_, err = usersCollection.Indexes().CreateOne(ctx, usernameIndexModel)
	if err != nil {
		return fmt.Errorf("error creating username index: %v", err)
	}

	emailIndexModel := mongo.IndexModel{
		Keys: bson.M{
			"email": 1,
		},
		Options: options.Index().SetUnique(true),
	}

	_, err = usersCollection.Indexes().CreateOne(ctx, emailIndexModel)
	if err != nil {
		return fmt.Errorf("error creating email index: %v", err)
	}

	// Every per-user collection is filtered by username on its hot path.
	usernameScopeIndexModel := mongo.IndexModel{
		Keys: bson.M{
			"username": 1,
		},
		Options: options.Index(),
	}

	for _, coll := range []string{CollHabits, CollWater, CollExercises, CollExams, CollAssignments} {
		_, err = m.collection(coll).Indexes().CreateOne(ctx, usernameScopeIndexModel)
		if err != nil {
			return fmt.Errorf("error creating username index on %s: %v", coll, err)
		}
	}

	// Courses are looked up by code as a secondary key. Not unique.
	codeIndexModel := mongo.IndexModel{
		Keys: bson.M{
			"code": 1,
		},
		Options: options.Index(),
	}

	_, err = m.collection(CollCourses).Indexes().CreateOne(ctx, codeIndexModel)
	if err != nil {
		return fmt.Errorf("error creating code index: %v", err)
	}

	return nil
}

// Disconnect closes the connection to the MongoDB server.
// It should be called when the MongoStore instance is no longer needed.
func (m *MongoStore) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := m.client.Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("error disconnecting from MongoDB: %v", err)
	}

	return nil
}

func (m *MongoStore) collection(name string) *mongo.Collection {
	return m.client.Database(m.dbName).Collection(name)
}

// mongoFilter translates the adapter filter into a bson filter, mapping the
// "id" key onto the document identity.
func mongoFilter(filter Filter) bson.M {
	out := bson.M{}
	for k, v := range filter {
		if k == "id" {
			k = "_id"
		}
		out[k] = v
	}
	return out
}

// fromDocument translates a document back into an adapter record, mapping
// "_id" onto the "id" field.
func fromDocument(doc bson.M) Record {
	rec := Record{}
	for k, v := range doc {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				v = oid.Hex()
			}
			k = "id"
		}
		rec[k] = v
	}
	return rec
}

// toDocument translates a record into an insertable document, assigning an
// identity when the record carries none. Returns the document and the id.
func toDocument(rec Record) (bson.M, string) {
	doc := bson.M{}
	id := ""
	for k, v := range rec {
		if k == "id" {
			if s, ok := v.(string); ok {
				id = s
			}
			continue
		}
		doc[k] = v
	}
	if id == "" {
		id = uuid.NewString()
	}
	doc["_id"] = id
	return doc, id
}

// Find returns all documents in the collection matching the filter.
// A filter that matches nothing yields an empty slice, not an error.
func (m *MongoStore) Find(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	cursor, err := m.collection(collection).Find(ctx, mongoFilter(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []Record{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, fromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Insert adds one document to the collection and returns its identity.
func (m *MongoStore) Insert(ctx context.Context, collection string, rec Record) (string, error) {
	doc, id := toDocument(rec)
	if _, err := m.collection(collection).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}

// InsertMany adds a batch of documents to the collection.
func (m *MongoStore) InsertMany(ctx context.Context, collection string, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(recs))
	for _, rec := range recs {
		doc, _ := toDocument(rec)
		docs = append(docs, doc)
	}
	_, err := m.collection(collection).InsertMany(ctx, docs)
	return err
}

// UpdateOne applies the patch to the first document matching the filter.
// With upsert set, a missing document is created from the filter's equality
// fields plus the patch, and receives a fresh identity.
func (m *MongoStore) UpdateOne(ctx context.Context, collection string, filter Filter, patch Record, upsert bool) (*UpdateResult, error) {
	set := bson.M{}
	for k, v := range patch {
		if k == "id" {
			continue // identity is never patched
		}
		set[k] = v
	}

	update := bson.M{"$set": set}
	opts := options.Update()
	if upsert {
		update["$setOnInsert"] = bson.M{"_id": uuid.NewString()}
		opts = opts.SetUpsert(true)
	}

	result, err := m.collection(collection).UpdateOne(ctx, mongoFilter(filter), update, opts)
	if err != nil {
		return nil, err
	}

	out := &UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}
	if result.UpsertedID != nil {
		if s, ok := result.UpsertedID.(string); ok {
			out.UpsertedID = s
		}
	}
	return out, nil
}

// DeleteOne deletes the first document matching the filter.
func (m *MongoStore) DeleteOne(ctx context.Context, collection string, filter Filter) (*DeleteResult, error) {
	result, err := m.collection(collection).DeleteOne(ctx, mongoFilter(filter))
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: result.DeletedCount}, nil
}

// DeleteMany deletes every document matching the filter.
func (m *MongoStore) DeleteMany(ctx context.Context, collection string, filter Filter) (*DeleteResult, error) {
	result, err := m.collection(collection).DeleteMany(ctx, mongoFilter(filter))
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: result.DeletedCount}, nil
}

// Count returns the number of documents in the collection matching the filter.
func (m *MongoStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	count, err := m.collection(collection).CountDocuments(ctx, mongoFilter(filter))
	if err != nil {
		return 0, err
	}
	return count, nil
}
