package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/queue"
	"github.com/flakonuz/catalog-backend/internal/repository"
)

func (h *CatalogHandler) ListColors(c echo.Context) error {
	page, limit := pageParams(c)
	search := c.QueryParam("search")
	searchParam := c.QueryParam("searchParam")
	if searchParam == "" {
		searchParam = "title_en"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Colors.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting colors. Try again later!"})
	}

	filtered := filterBySubstring(docs, searchParam, search)
	paged, pg := paginate(filtered, page, limit)

	return c.JSON(http.StatusOK, echo.Map{"colors": paged, "pagination": pg})
}

func (h *CatalogHandler) GetColor(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Colors.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Color not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting color. Try again later!"})
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *CatalogHandler) CreateColor(c echo.Context) error {
	id := c.FormValue("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")
	if id == "" || titleEn == "" || titleRu == "" || titleUz == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	col := model.Color{ID: id, TitleEn: titleEn, TitleRu: titleRu, TitleUz: titleUz}
	if err := h.Colors.Insert(ctx, col); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in adding new color, please try again later!"})
	}

	publishChange(c, h.Events, "colors", col.ID, queue.ActionCreated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Color successfully added!"})
}

func (h *CatalogHandler) UpdateColor(c echo.Context) error {
	colorID := c.Param("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")
	if titleEn == "" || titleRu == "" || titleUz == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Colors.Get(ctx, colorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Color not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing color!"})
	}

	col := model.Color{
		ID:      colorID,
		TitleEn: pick(titleEn, current, "title_en"),
		TitleRu: pick(titleRu, current, "title_ru"),
		TitleUz: pick(titleUz, current, "title_uz"),
	}
	if err := h.Colors.Replace(ctx, colorID, col); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Color not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing color!"})
	}

	publishChange(c, h.Events, "colors", colorID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Color successfully edited!"})
}

func (h *CatalogHandler) DeleteColor(c echo.Context) error {
	colorID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Colors.Delete(ctx, colorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Color not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting color!"})
	}

	publishChange(c, h.Events, "colors", colorID, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Color successfully deleted!"})
}

func (h *CatalogHandler) DeleteManyColors(c echo.Context) error {
	ids, ok := idBatch(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of colorsId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Colors.FindByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of colorsId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting colors, please try again later!"})
	}

	n, err := h.Colors.DeleteByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Colors not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting colors, please try again later!"})
	}

	for _, d := range docs {
		publishChange(c, h.Events, "colors", strField(d, "id"), queue.ActionDeleted)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d colors deleted!", n)})
}
