package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/queue"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

// ListCategories handles GET /api/categories/list with pagination and an
// in-memory substring search over one caller-chosen field.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	page, limit := pageParams(c)
	search := c.QueryParam("search")
	searchParam := c.QueryParam("searchParam")
	if searchParam == "" {
		searchParam = "title_en"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting categories. Try again later!"})
	}

	filtered := filterBySubstring(docs, searchParam, search)
	paged, pg := paginate(filtered, page, limit)

	items := make([]bson.M, 0, len(paged))
	for _, d := range paged {
		items = append(items, withImage(ctx, h.Images, repository.KindCategories, d))
	}

	return c.JSON(http.StatusOK, echo.Map{"categories": items, "pagination": pg})
}

// GetCategory handles GET /api/categories/list/:id with the image embedded.
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Categories.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting category. Try again later!"})
	}

	return c.JSON(http.StatusOK, withImage(ctx, h.Images, repository.KindCategories, doc))
}

// CreateCategory handles POST /api/categories/category (multipart). The
// image binary is stored first; the returned id becomes the category's
// image reference.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	id := c.FormValue("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")

	path, ok, err := saveUpload(c, h.Cfg.UploadDir)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}
	if id == "" || titleEn == "" || titleRu == "" || titleUz == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	imageID, err := h.Images.Attach(ctx, repository.KindCategories, path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}

	cat := model.Category{
		ID:      id,
		TitleEn: titleEn,
		TitleRu: titleRu,
		TitleUz: titleUz,
		AboutEn: c.FormValue("aboutCategory_en"),
		AboutRu: c.FormValue("aboutCategory_ru"),
		AboutUz: c.FormValue("aboutCategory_uz"),
		Image:   imageID,
	}
	if err := h.Categories.Insert(ctx, cat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in adding new category, please try again later!"})
	}

	publishChange(c, h.Events, repository.KindCategories, cat.ID, queue.ActionCreated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Category successfully added!"})
}

// UpdateCategory handles PUT /api/categories/category/:id. Localized fields
// fall back to their stored values when omitted; the image is replaced only
// when a new file arrived, and the record id is re-slugged from title_en.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	categoryID := c.Param("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")

	if titleEn == "" || titleRu == "" || titleUz == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing category!"})
	}

	imageID := strField(current, "image")
	if path, ok, ferr := saveUpload(c, h.Cfg.UploadDir); ok {
		if ferr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
		}
		imageID, err = h.Images.Replace(ctx, repository.KindCategories, strField(current, "image"), path)
		if err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "Category image not found in database!"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
		}
	}

	data := model.Category{
		ID:      slugify(titleEn),
		TitleEn: titleEn,
		TitleRu: titleRu,
		TitleUz: titleUz,
		AboutEn: pick(c.FormValue("aboutCategory_en"), current, "aboutCategory_en"),
		AboutRu: pick(c.FormValue("aboutCategory_ru"), current, "aboutCategory_ru"),
		AboutUz: pick(c.FormValue("aboutCategory_uz"), current, "aboutCategory_uz"),
		Image:   imageID,
	}
	if err := h.Categories.Replace(ctx, categoryID, data); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing category!"})
	}

	publishChange(c, h.Events, repository.KindCategories, data.ID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Category successfully edited!"})
}

// DeleteCategory handles DELETE /api/categories/category/delete/:id. The
// image binary is deleted first; if that touches nothing the whole delete is
// rejected before the category record is touched.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	categoryID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting category!"})
	}

	if err := h.Images.Detach(ctx, repository.KindCategories, strField(current, "image")); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category image not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting category!"})
	}

	if err := h.Categories.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting category!"})
	}

	publishChange(c, h.Events, repository.KindCategories, categoryID, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Category successfully deleted!"})
}

// DeleteManyCategories handles DELETE /api/categories/category/delete-many/:id
// where :id is a JSON array of storage ids. Referenced images are resolved
// and bulk-deleted first; zero deleted images or zero deleted categories
// fails the whole batch.
func (h *CatalogHandler) DeleteManyCategories(c echo.Context) error {
	ids, ok := idBatch(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of categoriesId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Categories.FindByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of categoriesId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting categories, please try again later!"})
	}

	imageIDs := make([]string, 0, len(docs))
	for _, d := range docs {
		if img := strField(d, "image"); img != "" {
			imageIDs = append(imageIDs, img)
		}
	}

	if _, err := h.Images.BulkDetach(ctx, repository.KindCategories, imageIDs); err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Categories images not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting categories, please try again later!"})
	}

	n, err := h.Categories.DeleteByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Categories not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting categories, please try again later!"})
	}

	for _, d := range docs {
		publishChange(c, h.Events, repository.KindCategories, strField(d, "id"), queue.ActionDeleted)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d categories deleted!", n)})
}
