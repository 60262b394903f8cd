package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/queue"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

// ListProducts handles GET /api/products/list. Besides the usual substring
// search it supports the storefront's go=go-search mode, which filters by
// category, material and a volume (ml) range instead.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	page, limit := pageParams(c)
	search := c.QueryParam("search")
	searchParam := c.QueryParam("searchParam")
	if searchParam == "" {
		searchParam = "title"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Products.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting products. Try again later!"})
	}

	var filtered []bson.M
	if c.QueryParam("go") == "go-search" {
		filtered = filterProductsByFacets(docs,
			c.QueryParam("parent"),
			c.QueryParam("material"),
			c.QueryParam("ob_min"),
			c.QueryParam("ob_max"),
		)
	} else {
		filtered = filterBySubstring(docs, searchParam, search)
	}
	paged, pg := paginate(filtered, page, limit)

	items := make([]bson.M, 0, len(paged))
	for _, d := range paged {
		items = append(items, withImage(ctx, h.Images, repository.KindProducts, d))
	}

	return c.JSON(http.StatusOK, echo.Map{"products": items, "pagination": pg})
}

// filterProductsByFacets applies the go-search predicates. Empty facet
// values leave their predicate open.
func filterProductsByFacets(docs []bson.M, category, material, obMin, obMax string) []bson.M {
	minML, hasMin := parseMaybeFloat(obMin)
	maxML, hasMax := parseMaybeFloat(obMax)

	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		if category != "" && strField(d, "category") != category {
			continue
		}
		if material != "" && strField(d, "material") != material {
			continue
		}
		ml := numField(d, "ml")
		if hasMin && ml < minML {
			continue
		}
		if hasMax && ml > maxML {
			continue
		}
		out = append(out, d)
	}
	return out
}

func parseMaybeFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numField reads a numeric bson value regardless of how the driver decoded it.
func numField(doc bson.M, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetProduct handles GET /api/products/list/:id with the image embedded.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Products.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting product. Try again later!"})
	}

	return c.JSON(http.StatusOK, withImage(ctx, h.Images, repository.KindProducts, doc))
}

// CreateProduct handles POST /api/products/product (multipart).
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	id := c.FormValue("id")
	title := c.FormValue("title")
	material := c.FormValue("material")
	category := c.FormValue("category")

	path, ok, err := saveUpload(c, h.Cfg.UploadDir)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}

	height, herr := strconv.ParseFloat(c.FormValue("height"), 64)
	width, werr := strconv.ParseFloat(c.FormValue("width"), 64)
	diameter, derr := strconv.ParseFloat(c.FormValue("diameter"), 64)
	ml, merr := strconv.ParseFloat(c.FormValue("ml"), 64)
	if id == "" || title == "" || material == "" || category == "" ||
		herr != nil || werr != nil || derr != nil || merr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	imageID, err := h.Images.Attach(ctx, repository.KindProducts, path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}

	p := model.Product{
		ID:       id,
		Title:    title,
		Height:   height,
		Width:    width,
		Diameter: diameter,
		ML:       ml,
		Material: material,
		Category: category,
		Image:    imageID,
	}
	if err := h.Products.Insert(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in adding new product, please try again later!"})
	}

	publishChange(c, h.Events, repository.KindProducts, p.ID, queue.ActionCreated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product successfully added!"})
}

// UpdateProduct handles PUT /api/products/product/:id. Omitted fields keep
// their stored values; the image is replaced only when a file arrived.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	productID := c.Param("id")
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing product!"})
	}

	imageID := strField(current, "image")
	if path, ok, ferr := saveUpload(c, h.Cfg.UploadDir); ok {
		if ferr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
		}
		imageID, err = h.Images.Replace(ctx, repository.KindProducts, strField(current, "image"), path)
		if err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "Product image not found in database!"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
		}
	}

	p := model.Product{
		ID:       productID,
		Title:    title,
		Height:   pickNum(c.FormValue("height"), current, "height"),
		Width:    pickNum(c.FormValue("width"), current, "width"),
		Diameter: pickNum(c.FormValue("diameter"), current, "diameter"),
		ML:       pickNum(c.FormValue("ml"), current, "ml"),
		Material: pick(c.FormValue("material"), current, "material"),
		Category: pick(c.FormValue("category"), current, "category"),
		Image:    imageID,
	}
	if err := h.Products.Replace(ctx, productID, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing product!"})
	}

	publishChange(c, h.Events, repository.KindProducts, productID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product successfully edited!"})
}

func pickNum(submitted string, current bson.M, key string) float64 {
	if submitted != "" {
		if f, err := strconv.ParseFloat(submitted, 64); err == nil {
			return f
		}
	}
	return numField(current, key)
}

// DeleteProduct handles DELETE /api/products/product/delete/:id, image
// binary first, content record only after that delete succeeded.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	productID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting product!"})
	}

	if err := h.Images.Detach(ctx, repository.KindProducts, strField(current, "image")); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product image not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting product!"})
	}

	if err := h.Products.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting product!"})
	}

	publishChange(c, h.Events, repository.KindProducts, productID, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product successfully deleted!"})
}

// DeleteManyProducts handles DELETE /api/products/product/delete-many/:id
// with a JSON array of storage ids.
func (h *CatalogHandler) DeleteManyProducts(c echo.Context) error {
	ids, ok := idBatch(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of productsId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Products.FindByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of productsId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting products, please try again later!"})
	}

	imageIDs := make([]string, 0, len(docs))
	for _, d := range docs {
		if img := strField(d, "image"); img != "" {
			imageIDs = append(imageIDs, img)
		}
	}

	if _, err := h.Images.BulkDetach(ctx, repository.KindProducts, imageIDs); err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Products images not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting products, please try again later!"})
	}

	n, err := h.Products.DeleteByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Products not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting products, please try again later!"})
	}

	for _, d := range docs {
		publishChange(c, h.Events, repository.KindProducts, strField(d, "id"), queue.ActionDeleted)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d products deleted!", n)})
}
