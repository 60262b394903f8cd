package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/utils"
)

func profileContext(t *testing.T, h *UserHandler, form url.Values, pathID string, current *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(pathID)
	if current != nil {
		c.Set("user", current)
	}
	return c, rec
}

func TestUpdateProfile(t *testing.T) {
	cfg := testConfig()
	admin := &model.User{ID: "id-1", Name: "Old", Surname: "Name", Username: "admin1"}

	form := url.Values{}
	form.Set("name", "Aziz")
	form.Set("surname", "Karimov")
	form.Set("username", "aziz01")

	t.Run("success", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, "id-1").Return(admin, nil)
		users.On("Replace", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "Aziz" && u.Username == "aziz01"
		})).Return(nil)

		h := NewUserHandler(cfg, users, new(mockImageRepo))
		c, rec := profileContext(t, h, form, "id-1", admin)

		assert.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		users.AssertExpectations(t)
	})

	t.Run("cannot edit someone else", func(t *testing.T) {
		users := new(mockUserRepo)
		h := NewUserHandler(cfg, users, new(mockImageRepo))
		c, rec := profileContext(t, h, form, "other-id", admin)

		assert.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		users.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("short name", func(t *testing.T) {
		bad := url.Values{}
		bad.Set("name", "Az")
		bad.Set("surname", "Karimov")
		bad.Set("username", "aziz01")

		h := NewUserHandler(cfg, new(mockUserRepo), new(mockImageRepo))
		c, rec := profileContext(t, h, bad, "id-1", admin)

		assert.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdatePassword(t *testing.T) {
	cfg := testConfig()

	newAdmin := func() *model.User {
		u := &model.User{ID: "id-1", Username: "admin1"}
		u.Password = utils.EncodePassword("old1234", u.ID, cfg.PasswordMarker)
		return u
	}

	passwordForm := func(current, next string) url.Values {
		form := url.Values{}
		form.Set("password", current)
		form.Set("newPassword", next)
		return form
	}

	t.Run("success re-encodes under the same id", func(t *testing.T) {
		admin := newAdmin()
		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, "id-1").Return(admin, nil)
		users.On("Replace", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return utils.DecodePassword(u.Password, u.ID, cfg.PasswordMarker) == "new1234"
		})).Return(nil)

		h := NewUserHandler(cfg, users, new(mockImageRepo))
		c, rec := profileContext(t, h, passwordForm("old1234", "new1234"), "id-1", admin)

		assert.NoError(t, h.UpdatePassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		admin := newAdmin()
		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, "id-1").Return(admin, nil)

		h := NewUserHandler(cfg, users, new(mockImageRepo))
		c, rec := profileContext(t, h, passwordForm("nope123", "new1234"), "id-1", admin)

		assert.NoError(t, h.UpdatePassword(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		users.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("new password out of bounds", func(t *testing.T) {
		h := NewUserHandler(cfg, new(mockUserRepo), new(mockImageRepo))
		c, rec := profileContext(t, h, passwordForm("old1234", "waytoolongpassword"), "id-1", newAdmin())

		assert.NoError(t, h.UpdatePassword(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteProfileImage(t *testing.T) {
	cfg := testConfig()

	t.Run("binary removed before the reference", func(t *testing.T) {
		admin := &model.User{ID: "id-1", Image: "img-1"}
		users := new(mockUserRepo)
		images := new(mockImageRepo)
		users.On("FindByID", mock.Anything, "id-1").Return(admin, nil)
		images.On("Detach", mock.Anything, repository.KindAdmins, "img-1").Return(nil)
		users.On("Replace", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Image == ""
		})).Return(nil)

		h := NewUserHandler(cfg, users, images)
		c, rec := profileContext(t, h, url.Values{}, "id-1", admin)

		assert.NoError(t, h.DeleteProfileImage(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		users.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("missing binary aborts", func(t *testing.T) {
		admin := &model.User{ID: "id-1", Image: "img-1"}
		users := new(mockUserRepo)
		images := new(mockImageRepo)
		users.On("FindByID", mock.Anything, "id-1").Return(admin, nil)
		images.On("Detach", mock.Anything, repository.KindAdmins, "img-1").Return(repository.ErrImageNotFound)

		h := NewUserHandler(cfg, users, images)
		c, rec := profileContext(t, h, url.Values{}, "id-1", admin)

		assert.NoError(t, h.DeleteProfileImage(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		users.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})
}
