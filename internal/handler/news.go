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

// ListNews handles GET /api/about/news/list. Without page, limit and search
// parameters the whole set comes back as a bare array; the public site reads
// it that way. With any of them the response is the paginated envelope.
func (h *CompanyHandler) ListNews(c echo.Context) error {
	search := c.QueryParam("search")
	searchParam := c.QueryParam("searchParam")
	if searchParam == "" {
		searchParam = "title_en"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.News.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting company news. Try again later!"})
	}

	if c.QueryParam("page") == "" && c.QueryParam("limit") == "" && search == "" {
		items := make([]bson.M, 0, len(docs))
		for _, d := range docs {
			items = append(items, withImage(ctx, h.Images, repository.KindNews, d))
		}
		return c.JSON(http.StatusOK, items)
	}

	page, limit := pageParams(c)
	filtered := filterBySubstring(docs, searchParam, search)
	paged, pg := paginate(filtered, page, limit)

	items := make([]bson.M, 0, len(paged))
	for _, d := range paged {
		items = append(items, withImage(ctx, h.Images, repository.KindNews, d))
	}

	return c.JSON(http.StatusOK, echo.Map{"companyNews": items, "pagination": pg})
}

// GetNews handles GET /api/about/news/:id with the image embedded.
func (h *CompanyHandler) GetNews(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.News.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "News not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting news. Try again later!"})
	}

	return c.JSON(http.StatusOK, withImage(ctx, h.Images, repository.KindNews, doc))
}

// CreateNews handles POST /api/about/news (multipart).
func (h *CompanyHandler) CreateNews(c echo.Context) error {
	id := c.FormValue("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")
	descEn := c.FormValue("description_en")
	descRu := c.FormValue("description_ru")
	descUz := c.FormValue("description_uz")
	publishedDate := c.FormValue("published_date")

	path, ok, err := saveUpload(c, h.Cfg.UploadDir)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}
	if id == "" || titleEn == "" || titleRu == "" || titleUz == "" || descEn == "" || descRu == "" || descUz == "" || publishedDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	imageID, err := h.Images.Attach(ctx, repository.KindNews, path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}

	n := model.News{
		ID:            id,
		TitleEn:       titleEn,
		TitleRu:       titleRu,
		TitleUz:       titleUz,
		DescriptionEn: descEn,
		DescriptionRu: descRu,
		DescriptionUz: descUz,
		PublishedDate: publishedDate,
		Image:         imageID,
	}
	if err := h.News.Insert(ctx, n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in adding company news, please try again later!"})
	}

	publishChange(c, h.Events, repository.KindNews, n.ID, queue.ActionCreated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Company news successfully added!"})
}

// UpdateNews handles PUT /api/about/news/:id. Omitted localized fields keep
// their stored values; the image is replaced only when a new file arrived.
func (h *CompanyHandler) UpdateNews(c echo.Context) error {
	newsID := c.Param("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")
	descEn := c.FormValue("description_en")
	descRu := c.FormValue("description_ru")
	descUz := c.FormValue("description_uz")
	publishedDate := c.FormValue("published_date")

	if titleEn == "" || titleRu == "" || titleUz == "" || descEn == "" || descRu == "" || descUz == "" || publishedDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.News.Get(ctx, newsID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "News not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing company news!"})
	}

	imageID := strField(current, "image")
	if path, ok, ferr := saveUpload(c, h.Cfg.UploadDir); ok {
		if ferr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
		}
		imageID, err = h.Images.Replace(ctx, repository.KindNews, strField(current, "image"), path)
		if err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "Company news image not found in database!"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
		}
	}

	data := model.News{
		ID:            newsID,
		TitleEn:       titleEn,
		TitleRu:       titleRu,
		TitleUz:       titleUz,
		DescriptionEn: pick(descEn, current, "description_en"),
		DescriptionRu: pick(descRu, current, "description_ru"),
		DescriptionUz: pick(descUz, current, "description_uz"),
		PublishedDate: pick(publishedDate, current, "published_date"),
		Image:         imageID,
	}
	if err := h.News.Replace(ctx, newsID, data); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "News not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing company news!"})
	}

	publishChange(c, h.Events, repository.KindNews, newsID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Company news successfully edited!"})
}

// DeleteNews handles DELETE /api/about/news/delete/:id with the image
// removed first.
func (h *CompanyHandler) DeleteNews(c echo.Context) error {
	newsID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.News.Get(ctx, newsID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "News not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting company news!"})
	}

	if err := h.Images.Detach(ctx, repository.KindNews, strField(current, "image")); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company news image not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting company news!"})
	}

	if err := h.News.Delete(ctx, newsID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "News not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting company news!"})
	}

	publishChange(c, h.Events, repository.KindNews, newsID, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Company news successfully deleted!"})
}

// DeleteManyNews handles DELETE /api/about/news/delete-many/:id where :id is
// a JSON array of storage ids.
func (h *CompanyHandler) DeleteManyNews(c echo.Context) error {
	ids, ok := idBatch(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of newsId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.News.FindByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of newsId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting company news, please try again later!"})
	}

	imageIDs := make([]string, 0, len(docs))
	for _, d := range docs {
		if img := strField(d, "image"); img != "" {
			imageIDs = append(imageIDs, img)
		}
	}

	if _, err := h.Images.BulkDetach(ctx, repository.KindNews, imageIDs); err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company news images not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting company news, please try again later!"})
	}

	n, err := h.News.DeleteByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Company news not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting company news, please try again later!"})
	}

	for _, d := range docs {
		publishChange(c, h.Events, repository.KindNews, strField(d, "id"), queue.ActionDeleted)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d company news deleted!", n)})
}
