package repository

import (
	"context"
	"errors"
	"fmt"

	"PortfolioFM/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentStore is a generic collection-based accessor over the document
// database. Collection names are caller-supplied; there is no enumeration or
// sanitization beyond the existence check.
type DocumentStore struct {
	db *mongo.Database
}

// NewDocumentStore creates a DocumentStore over the given database handle.
func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db}
}

// ParseObjectID validates a caller-supplied identifier. Malformed
// identifiers fail with InvalidInput before any store access.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Newf(apperr.InvalidInput, "invalid ID '%s'", id)
	}
	return oid, nil
}

// Exists reports whether the named collection exists.
func (s *DocumentStore) Exists(ctx context.Context, collection string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": collection})
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	return len(names) > 0, nil
}

// RequireCollection fails with NotFound when the named collection does not
// exist. Handlers call this before touching records or external services.
func (s *DocumentStore) RequireCollection(ctx context.Context, collection string) error {
	exists, err := s.Exists(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Newf(apperr.NotFound, "collection '%s' does not exist", collection)
	}
	return nil
}

// Find decodes all documents matching filter into out, which must be a
// pointer to a slice.
func (s *DocumentStore) Find(ctx context.Context, collection string, filter interface{}, out interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode documents from %s: %w", collection, err)
	}
	return nil
}

// FindOne decodes a single document matching filter into out. A missing
// document maps to NotFound.
func (s *DocumentStore) FindOne(ctx context.Context, collection string, filter interface{}, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.New(apperr.NotFound, "document not found")
	}
	if err != nil {
		return fmt.Errorf("failed to fetch document from %s: %w", collection, err)
	}
	return nil
}

// InsertOne inserts a document and returns its generated identifier.
func (s *DocumentStore) InsertOne(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid, nil
}

// InsertMany inserts documents and returns the generated identifiers as hex
// strings.
func (s *DocumentStore) InsertMany(ctx context.Context, collection string, docs []interface{}) ([]string, error) {
	res, err := s.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

// UpdateOne applies update to the first document matching filter and returns
// the matched count.
func (s *DocumentStore) UpdateOne(ctx context.Context, collection string, filter, update interface{}) (int64, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update document in %s: %w", collection, err)
	}
	return res.MatchedCount, nil
}

// DeleteOne removes the first document matching filter. Deleting a missing
// document maps to NotFound.
func (s *DocumentStore) DeleteOne(ctx context.Context, collection string, filter interface{}) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete document from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "document not found")
	}
	return nil
}

// DeleteMany removes every document matching filter and returns the count.
func (s *DocumentStore) DeleteMany(ctx context.Context, collection string, filter interface{}) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents from %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// Ping probes store reachability for the health check.
func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return apperr.Wrap(apperr.Unavailable, "document store unreachable", err)
	}
	return nil
}
