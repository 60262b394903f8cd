package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

func facetDocs() []bson.M {
	return []bson.M{
		{"id": "p1", "category": "vases", "material": "glass", "ml": float64(250)},
		{"id": "p2", "category": "vases", "material": "ceramic", "ml": int32(500)},
		{"id": "p3", "category": "bottles", "material": "glass", "ml": int64(100)},
		{"id": "p4", "category": "vases", "material": "glass"},
	}
}

func TestFilterProductsByFacets(t *testing.T) {
	t.Run("open facets pass everything", func(t *testing.T) {
		assert.Len(t, filterProductsByFacets(facetDocs(), "", "", "", ""), 4)
	})

	t.Run("category", func(t *testing.T) {
		got := filterProductsByFacets(facetDocs(), "bottles", "", "", "")
		assert.Len(t, got, 1)
		assert.Equal(t, "p3", got[0]["id"])
	})

	t.Run("category and material", func(t *testing.T) {
		got := filterProductsByFacets(facetDocs(), "vases", "glass", "", "")
		assert.Len(t, got, 2)
	})

	t.Run("volume range spans decoder types", func(t *testing.T) {
		got := filterProductsByFacets(facetDocs(), "", "", "200", "600")
		assert.Len(t, got, 2)
	})

	t.Run("missing ml counts as zero", func(t *testing.T) {
		got := filterProductsByFacets(facetDocs(), "", "", "1", "")
		assert.Len(t, got, 3)
	})

	t.Run("unparseable bound is ignored", func(t *testing.T) {
		assert.Len(t, filterProductsByFacets(facetDocs(), "", "", "abc", ""), 4)
	})
}

func TestListProducts_GoSearch(t *testing.T) {
	content := new(mockContentRepo)
	images := new(mockImageRepo)
	content.On("List", mock.Anything).Return(facetDocs(), nil)
	images.On("Get", mock.Anything, repository.KindProducts, mock.Anything).
		Return(&model.Image{ID: "img"}, nil)

	h := newTestCatalogHandler(t, content, images, new(mockPublisher))
	req := httptest.NewRequest(http.MethodGet, "/?go=go-search&parent=vases&material=glass&ob_min=100", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.ListProducts(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"id":"p1"`)
}

func TestPickNum(t *testing.T) {
	current := bson.M{"height": float64(12.5)}
	assert.Equal(t, 20.0, pickNum("20", current, "height"))
	assert.Equal(t, 12.5, pickNum("", current, "height"))
	assert.Equal(t, 0.0, pickNum("", bson.M{}, "height"))
}
