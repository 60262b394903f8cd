package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

type stubUserRepo struct {
	byToken map[string]*model.User
	err     error
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) FindByToken(ctx context.Context, token string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.byToken[token]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) Replace(ctx context.Context, u *model.User) error { return nil }

var _ repository.UserRepository = (*stubUserRepo)(nil)

func runBearerAuth(t *testing.T, users repository.UserRepository, token string) (*httptest.ResponseRecorder, bool, any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := BearerAuth(users)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return rec, reached, c.Get("user")
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	rec, reached, _ := runBearerAuth(t, &stubUserRepo{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, reached)
}

func TestBearerAuth_UnknownToken(t *testing.T) {
	rec, reached, _ := runBearerAuth(t, &stubUserRepo{}, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestBearerAuth_StorageError(t *testing.T) {
	rec, reached, _ := runBearerAuth(t, &stubUserRepo{err: errors.New("mongo down")}, "tok")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reached)
}

func TestBearerAuth_ValidToken(t *testing.T) {
	admin := &model.User{ID: "id-1", Username: "admin1", Token: "tok-123"}
	users := &stubUserRepo{byToken: map[string]*model.User{"tok-123": admin}}

	rec, reached, got := runBearerAuth(t, users, "tok-123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, admin, got)
}
