package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/queue"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/service"
)

// Local light mocks

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if v, ok := args.Get(0).(*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) FindByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if v, ok := args.Get(0).(*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) Replace(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockContentRepo struct{ mock.Mock }

func (m *mockContentRepo) List(ctx context.Context) ([]bson.M, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]bson.M); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContentRepo) Get(ctx context.Context, id string) (bson.M, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(bson.M); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContentRepo) Insert(ctx context.Context, doc any) error {
	return m.Called(ctx, doc).Error(0)
}
func (m *mockContentRepo) Replace(ctx context.Context, id string, doc any) error {
	return m.Called(ctx, id, doc).Error(0)
}
func (m *mockContentRepo) Update(ctx context.Context, id string, set bson.M) error {
	return m.Called(ctx, id, set).Error(0)
}
func (m *mockContentRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockContentRepo) FindByStorageIDs(ctx context.Context, hexIDs []string) ([]bson.M, error) {
	args := m.Called(ctx, hexIDs)
	if v, ok := args.Get(0).([]bson.M); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContentRepo) DeleteByStorageIDs(ctx context.Context, hexIDs []string) (int64, error) {
	args := m.Called(ctx, hexIDs)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockContentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.ContentRepository = (*mockContentRepo)(nil)

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) Attach(ctx context.Context, kind, path string) (string, error) {
	args := m.Called(ctx, kind, path)
	return args.String(0), args.Error(1)
}
func (m *mockImageRepo) Get(ctx context.Context, kind, id string) (*model.Image, error) {
	args := m.Called(ctx, kind, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockImageRepo) Replace(ctx context.Context, kind, oldID, path string) (string, error) {
	args := m.Called(ctx, kind, oldID, path)
	return args.String(0), args.Error(1)
}
func (m *mockImageRepo) Detach(ctx context.Context, kind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}
func (m *mockImageRepo) BulkDetach(ctx context.Context, kind string, ids []string) (int64, error) {
	args := m.Called(ctx, kind, ids)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.ImageRepository = (*mockImageRepo)(nil)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishContentChanged(ctx context.Context, ev queue.ContentChangedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

var _ service.EventPublisher = (*mockPublisher)(nil)
