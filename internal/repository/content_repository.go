package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// ContentRepository is the access layer for one content collection
// (products, categories, materials, colors, manufacturers, news, settings).
// Documents are handled as bson.M because list search and edit merging
// operate on caller-chosen field names.
type ContentRepository interface {
	List(ctx context.Context) ([]bson.M, error)
	Get(ctx context.Context, id string) (bson.M, error)
	Insert(ctx context.Context, doc any) error
	Replace(ctx context.Context, id string, doc any) error
	Update(ctx context.Context, id string, set bson.M) error
	Delete(ctx context.Context, id string) error
	FindByStorageIDs(ctx context.Context, hexIDs []string) ([]bson.M, error)
	DeleteByStorageIDs(ctx context.Context, hexIDs []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ContentRepo binds the store gateway to one database/collection pair.
type ContentRepo struct {
	store *Store
	db    string
	coll  string
}

func NewContentRepo(store *Store, db, coll string) *ContentRepo {
	return &ContentRepo{store: store, db: db, coll: coll}
}

var _ ContentRepository = (*ContentRepo)(nil)

func (r *ContentRepo) List(ctx context.Context) ([]bson.M, error) {
	return r.store.FindAll(ctx, r.db, r.coll)
}

func (r *ContentRepo) Get(ctx context.Context, id string) (bson.M, error) {
	return r.store.FindOne(ctx, r.db, r.coll, id)
}

func (r *ContentRepo) Insert(ctx context.Context, doc any) error {
	return r.store.InsertOne(ctx, r.db, r.coll, doc)
}

func (r *ContentRepo) Replace(ctx context.Context, id string, doc any) error {
	return r.store.ReplaceOne(ctx, r.db, r.coll, id, doc)
}

func (r *ContentRepo) Update(ctx context.Context, id string, set bson.M) error {
	return r.store.UpdateOne(ctx, r.db, r.coll, id, set)
}

// Delete removes the record with the caller-assigned id. Zero affected
// documents is ErrNotFound.
func (r *ContentRepo) Delete(ctx context.Context, id string) error {
	n, err := r.store.DeleteOne(ctx, r.db, r.coll, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepo) FindByStorageIDs(ctx context.Context, hexIDs []string) ([]bson.M, error) {
	return r.store.FindByObjectIDs(ctx, r.db, r.coll, hexIDs)
}

// DeleteByStorageIDs removes a batch by storage id. Zero affected documents
// fails the whole batch with ErrNoneDeleted.
func (r *ContentRepo) DeleteByStorageIDs(ctx context.Context, hexIDs []string) (int64, error) {
	n, err := r.store.DeleteByObjectIDs(ctx, r.db, r.coll, hexIDs)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNoneDeleted
	}
	return n, nil
}

func (r *ContentRepo) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, r.db, r.coll)
}
