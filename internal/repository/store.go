package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the document store gateway: a thin set of primitives over the
// Mongo client that every repository composes. It is constructed once at
// startup and injected; nothing in this package holds global state.
type Store struct {
	client *mongo.Client
}

func NewStore(client *mongo.Client) *Store { return &Store{client: client} }

// Collection returns a handle on a collection in the given database.
func (s *Store) Collection(db, name string) *mongo.Collection {
	return s.client.Database(db).Collection(name)
}

// FindAll loads every document in a collection.
func (s *Store) FindAll(ctx context.Context, db, name string) ([]bson.M, error) {
	cur, err := s.Collection(db, name).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOne looks a document up by its caller-assigned id field.
func (s *Store) FindOne(ctx context.Context, db, name, id string) (bson.M, error) {
	return s.FindByField(ctx, db, name, "id", id)
}

// FindByField looks a single document up by an arbitrary field value.
func (s *Store) FindByField(ctx context.Context, db, name, field, value string) (bson.M, error) {
	var doc bson.M
	err := s.Collection(db, name).FindOne(ctx, bson.M{field: value}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindByObjectIDs loads the documents whose storage ids are in the given hex
// set. A malformed hex id fails the whole call with ErrInvalidID.
func (s *Store) FindByObjectIDs(ctx context.Context, db, name string, hexIDs []string) ([]bson.M, error) {
	oids, err := toObjectIDs(hexIDs)
	if err != nil {
		return nil, err
	}
	cur, err := s.Collection(db, name).Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// InsertOne writes a new document.
func (s *Store) InsertOne(ctx context.Context, db, name string, doc any) error {
	_, err := s.Collection(db, name).InsertOne(ctx, doc)
	return err
}

// ReplaceOne swaps the document with the given caller-assigned id for doc.
// Matching nothing is ErrNotFound.
func (s *Store) ReplaceOne(ctx context.Context, db, name, id string, doc any) error {
	res, err := s.Collection(db, name).ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOne applies a $set of the given fields to the document with the
// caller-assigned id. Matching nothing is ErrNotFound.
func (s *Store) UpdateOne(ctx context.Context, db, name, id string, set bson.M) error {
	res, err := s.Collection(db, name).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOne removes the document with the caller-assigned id and reports how
// many documents were affected.
func (s *Store) DeleteOne(ctx context.Context, db, name, id string) (int64, error) {
	res, err := s.Collection(db, name).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByObjectIDs removes every document whose storage id is in the hex
// set and reports the affected count.
func (s *Store) DeleteByObjectIDs(ctx context.Context, db, name string, hexIDs []string) (int64, error) {
	oids, err := toObjectIDs(hexIDs)
	if err != nil {
		return 0, err
	}
	res, err := s.Collection(db, name).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count reports the number of documents in a collection.
func (s *Store) Count(ctx context.Context, db, name string) (int64, error) {
	return s.Collection(db, name).CountDocuments(ctx, bson.M{})
}

func toObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		oid, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, ErrInvalidID
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
