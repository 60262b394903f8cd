package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

func getImageContext(kind, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("kind", "id")
	c.SetParamValues(kind, id)
	return c, rec
}

func TestGetImage(t *testing.T) {
	images := new(mockImageRepo)
	images.On("Get", mock.Anything, repository.KindProducts, "img-1").
		Return(&model.Image{ID: "img-1", ContentType: "image/png"}, nil)
	images.On("Get", mock.Anything, repository.KindNews, "ghost").
		Return(nil, repository.ErrImageNotFound)

	h := NewImageHandler(images)

	t.Run("found", func(t *testing.T) {
		c, rec := getImageContext(repository.KindProducts, "img-1")
		assert.NoError(t, h.GetImage(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"contentType":"image/png"`)
	})

	t.Run("missing", func(t *testing.T) {
		c, rec := getImageContext(repository.KindNews, "ghost")
		assert.NoError(t, h.GetImage(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown partition", func(t *testing.T) {
		c, rec := getImageContext("gadgets", "img-1")
		assert.NoError(t, h.GetImage(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		images.AssertNotCalled(t, "Get", mock.Anything, "gadgets", mock.Anything)
	})
}
