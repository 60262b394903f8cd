package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/flakonuz/catalog-backend/internal/model"
)

// ImageRepository stores binary image documents in per-kind partitions of
// the images database. Content records reference images by the
// caller-assigned id returned from Attach, never by the storage id.
type ImageRepository interface {
	Attach(ctx context.Context, kind, path string) (string, error)
	Get(ctx context.Context, kind, id string) (*model.Image, error)
	Replace(ctx context.Context, kind, oldID, path string) (string, error)
	Detach(ctx context.Context, kind, id string) error
	BulkDetach(ctx context.Context, kind string, ids []string) (int64, error)
}

// ImageRepo implements ImageRepository over the store gateway.
type ImageRepo struct{ store *Store }

func NewImageRepo(store *Store) *ImageRepo { return &ImageRepo{store: store} }

var _ ImageRepository = (*ImageRepo)(nil)

// Attach reads the staged upload at path, persists it under a fresh id in
// the partition for kind and removes the staged file. When the write fails
// the staged file is deliberately left in place.
func (r *ImageRepo) Attach(ctx context.Context, kind, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	img := model.Image{
		ID:          uuid.NewString(),
		Data:        data,
		ContentType: contentTypeFor(path),
	}
	if err := r.store.InsertOne(ctx, DBImages, kind, img); err != nil {
		return "", err
	}
	_ = os.Remove(path)
	return img.ID, nil
}

// Get loads an image document by its caller-assigned id.
func (r *ImageRepo) Get(ctx context.Context, kind, id string) (*model.Image, error) {
	var img model.Image
	err := r.store.Collection(DBImages, kind).FindOne(ctx, bson.M{"id": id}).Decode(&img)
	if err == mongo.ErrNoDocuments {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Replace deletes the image at oldID and attaches the staged file as a new
// document, returning the new id. The two halves are separate writes;
// failures come back tagged with the phase that broke so callers can tell an
// orphaned old image from a never-stored new one.
func (r *ImageRepo) Replace(ctx context.Context, kind, oldID, path string) (string, error) {
	n, err := r.store.DeleteOne(ctx, DBImages, kind, oldID)
	if err != nil {
		return "", &ImagePhaseError{Phase: PhaseDelete, Err: err}
	}
	if n == 0 {
		return "", &ImagePhaseError{Phase: PhaseDelete, Err: ErrImageNotFound}
	}
	id, err := r.Attach(ctx, kind, path)
	if err != nil {
		return "", &ImagePhaseError{Phase: PhaseStore, Err: err}
	}
	return id, nil
}

// Detach deletes an image by caller-assigned id. Zero affected documents is
// ErrImageNotFound; callers delete the image before the owning content
// record and abort on that error.
func (r *ImageRepo) Detach(ctx context.Context, kind, id string) error {
	n, err := r.store.DeleteOne(ctx, DBImages, kind, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrImageNotFound
	}
	return nil
}

// BulkDetach resolves the caller-assigned ids to storage ids and issues one
// bulk delete. Zero affected documents fails the batch with ErrNoneDeleted,
// even when only some ids were absent.
func (r *ImageRepo) BulkDetach(ctx context.Context, kind string, ids []string) (int64, error) {
	cur, err := r.store.Collection(DBImages, kind).Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	var docs []model.Image
	if err := cur.All(ctx, &docs); err != nil {
		return 0, err
	}
	oids := make([]string, 0, len(docs))
	for _, d := range docs {
		oids = append(oids, d.StorageID.Hex())
	}
	n, err := r.store.DeleteByObjectIDs(ctx, DBImages, kind, oids)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNoneDeleted
	}
	return n, nil
}

// contentTypeFor derives the stored content type from the staged file's
// extension, mirroring how uploads are named by the admin UI.
func contentTypeFor(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
