package repository

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/utils"
)

// UserRepository is the credential store consumed by the auth handlers and
// the bearer middleware.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByToken(ctx context.Context, token string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Replace(ctx context.Context, u *model.User) error
}

// UserRepo implements UserRepository on the admins collection.
type UserRepo struct{ store *Store }

func NewUserRepo(store *Store) *UserRepo { return &UserRepo{store: store} }

var _ UserRepository = (*UserRepo)(nil)

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, bson.M{"username": username})
}

func (r *UserRepo) FindByToken(ctx context.Context, token string) (*model.User, error) {
	return r.findBy(ctx, bson.M{"access_token": token})
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, bson.M{"id": id})
}

func (r *UserRepo) findBy(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	err := r.store.Collection(DBAdmins, CollAdmins).FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Replace persists the full credential record keyed by its internal id.
func (r *UserRepo) Replace(ctx context.Context, u *model.User) error {
	return r.store.ReplaceOne(ctx, DBAdmins, CollAdmins, u.ID, u)
}

// EnsureAdmin seeds an admin account on first run. The internal id and the
// static bearer token are generated here and never again; the password is
// stored in its transformed form keyed by that id.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, password, marker string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := r.FindByUsername(ctx, username); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}

	id := uuid.NewString()
	u := model.User{
		ID:       id,
		Name:     "Admin",
		Surname:  "",
		Username: username,
		Password: utils.EncodePassword(password, id, marker),
		Token:    uuid.NewString(),
	}
	if err := r.store.InsertOne(ctx, DBAdmins, CollAdmins, u); err != nil {
		return err
	}
	log.Printf("seeded admin account %q", username)
	return nil
}
