package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/config"
	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

func newTestCatalogHandler(t *testing.T, content *mockContentRepo, images *mockImageRepo, events *mockPublisher) *CatalogHandler {
	t.Helper()
	return &CatalogHandler{
		Cfg:           config.Config{UploadDir: t.TempDir()},
		Products:      content,
		Categories:    content,
		Materials:     content,
		Colors:        content,
		Manufacturers: content,
		Images:        images,
		Events:        events,
	}
}

// multipartBody builds a multipart form with the given fields and, when
// withFile is set, a small fake image part named "image".
func multipartBody(t *testing.T, fields map[string]string, withFile bool) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	if withFile {
		part, err := w.CreateFormFile("image", "test.png")
		assert.NoError(t, err)
		_, err = part.Write([]byte("not really a png"))
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateCategory(t *testing.T) {
	fields := map[string]string{
		"id":       "table-vases",
		"title_en": "Table Vases",
		"title_ru": "Настольные вазы",
		"title_uz": "Stol vazalari",
	}

	t.Run("success", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)
		events := new(mockPublisher)
		images.On("Attach", mock.Anything, repository.KindCategories, mock.Anything).Return("img-1", nil)
		content.On("Insert", mock.Anything, mock.MatchedBy(func(doc any) bool {
			cat, ok := doc.(model.Category)
			return ok && cat.ID == "table-vases" && cat.Image == "img-1"
		})).Return(nil)
		events.On("PublishContentChanged", mock.Anything, mock.Anything).Return(nil)

		h := newTestCatalogHandler(t, content, images, events)
		body, ctype := multipartBody(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/api/categories/category", body)
		req.Header.Set(echo.HeaderContentType, ctype)
		rec := httptest.NewRecorder()

		assert.NoError(t, h.CreateCategory(echo.New().NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		content.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("missing file is rejected before anything is stored", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)

		h := newTestCatalogHandler(t, content, images, new(mockPublisher))
		body, ctype := multipartBody(t, fields, false)
		req := httptest.NewRequest(http.MethodPost, "/api/categories/category", body)
		req.Header.Set(echo.HeaderContentType, ctype)
		rec := httptest.NewRecorder()

		assert.NoError(t, h.CreateCategory(echo.New().NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		images.AssertNotCalled(t, "Attach", mock.Anything, mock.Anything, mock.Anything)
		content.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("missing params", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)

		h := newTestCatalogHandler(t, content, images, new(mockPublisher))
		body, ctype := multipartBody(t, map[string]string{"id": "x"}, true)
		req := httptest.NewRequest(http.MethodPost, "/api/categories/category", body)
		req.Header.Set(echo.HeaderContentType, ctype)
		rec := httptest.NewRecorder()

		assert.NoError(t, h.CreateCategory(echo.New().NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		content.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestGetCategory(t *testing.T) {
	content := new(mockContentRepo)
	images := new(mockImageRepo)
	content.On("Get", mock.Anything, "table-vases").Return(bson.M{"id": "table-vases", "image": "img-1"}, nil)
	images.On("Get", mock.Anything, repository.KindCategories, "img-1").
		Return(&model.Image{ID: "img-1", ContentType: "image/png"}, nil)

	h := newTestCatalogHandler(t, content, images, new(mockPublisher))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("table-vases")

	assert.NoError(t, h.GetCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"contentType":"image/png"`)
}

func TestGetCategory_NotFound(t *testing.T) {
	content := new(mockContentRepo)
	content.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	h := newTestCatalogHandler(t, content, new(mockImageRepo), new(mockPublisher))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	assert.NoError(t, h.GetCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCategories_Pagination(t *testing.T) {
	docs := make([]bson.M, 12)
	for i := range docs {
		docs[i] = bson.M{"id": "c", "title_en": "Vase", "image": "img"}
	}
	content := new(mockContentRepo)
	images := new(mockImageRepo)
	content.On("List", mock.Anything).Return(docs, nil)
	images.On("Get", mock.Anything, repository.KindCategories, "img").
		Return(&model.Image{ID: "img"}, nil)

	h := newTestCatalogHandler(t, content, images, new(mockPublisher))
	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=10", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.ListCategories(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":12`)
	assert.Contains(t, rec.Body.String(), `"totalPages":2`)
	// Page 2 of 12 at limit 10 carries two items, so only two image lookups.
	images.AssertNumberOfCalls(t, "Get", 2)
}

func TestDeleteCategory_ImageFirst(t *testing.T) {
	t.Run("missing image aborts the delete", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)
		content.On("Get", mock.Anything, "table-vases").Return(bson.M{"id": "table-vases", "image": "img-1"}, nil)
		images.On("Detach", mock.Anything, repository.KindCategories, "img-1").Return(repository.ErrImageNotFound)

		h := newTestCatalogHandler(t, content, images, new(mockPublisher))
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("table-vases")

		assert.NoError(t, h.DeleteCategory(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		content.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("success deletes image then record", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)
		events := new(mockPublisher)
		content.On("Get", mock.Anything, "table-vases").Return(bson.M{"id": "table-vases", "image": "img-1"}, nil)
		images.On("Detach", mock.Anything, repository.KindCategories, "img-1").Return(nil)
		content.On("Delete", mock.Anything, "table-vases").Return(nil)
		events.On("PublishContentChanged", mock.Anything, mock.Anything).Return(nil)

		h := newTestCatalogHandler(t, content, images, events)
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("table-vases")

		assert.NoError(t, h.DeleteCategory(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		content.AssertExpectations(t)
		images.AssertExpectations(t)
	})
}

func TestDeleteManyCategories(t *testing.T) {
	hexA := "64a000000000000000000001"
	hexB := "64a000000000000000000002"
	batch := `["` + hexA + `","` + hexB + `"]`

	t.Run("success", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)
		events := new(mockPublisher)
		content.On("FindByStorageIDs", mock.Anything, []string{hexA, hexB}).
			Return([]bson.M{{"id": "a", "image": "img-a"}, {"id": "b", "image": "img-b"}}, nil)
		images.On("BulkDetach", mock.Anything, repository.KindCategories, []string{"img-a", "img-b"}).
			Return(int64(2), nil)
		content.On("DeleteByStorageIDs", mock.Anything, []string{hexA, hexB}).Return(int64(2), nil)
		events.On("PublishContentChanged", mock.Anything, mock.Anything).Return(nil)

		h := newTestCatalogHandler(t, content, images, events)
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(batch)

		assert.NoError(t, h.DeleteManyCategories(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "2 categories deleted!")
	})

	t.Run("malformed batch", func(t *testing.T) {
		content := new(mockContentRepo)
		h := newTestCatalogHandler(t, content, new(mockImageRepo), new(mockPublisher))
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("not-json")

		assert.NoError(t, h.DeleteManyCategories(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		content.AssertNotCalled(t, "FindByStorageIDs", mock.Anything, mock.Anything)
	})

	t.Run("no images deleted aborts the batch", func(t *testing.T) {
		content := new(mockContentRepo)
		images := new(mockImageRepo)
		content.On("FindByStorageIDs", mock.Anything, []string{hexA, hexB}).
			Return([]bson.M{{"id": "a", "image": "img-a"}}, nil)
		images.On("BulkDetach", mock.Anything, repository.KindCategories, []string{"img-a"}).
			Return(int64(0), repository.ErrNoneDeleted)

		h := newTestCatalogHandler(t, content, images, new(mockPublisher))
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(batch)

		assert.NoError(t, h.DeleteManyCategories(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		content.AssertNotCalled(t, "DeleteByStorageIDs", mock.Anything, mock.Anything)
	})
}
