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

func (h *CatalogHandler) ListManufacturers(c echo.Context) error {
	page, limit := pageParams(c)
	search := c.QueryParam("search")
	searchParam := c.QueryParam("searchParam")
	if searchParam == "" {
		searchParam = "title_en"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Manufacturers.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting manufacturers. Try again later!"})
	}

	filtered := filterBySubstring(docs, searchParam, search)
	paged, pg := paginate(filtered, page, limit)

	return c.JSON(http.StatusOK, echo.Map{"manufacturers": paged, "pagination": pg})
}

func (h *CatalogHandler) GetManufacturer(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Manufacturers.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Manufacturer not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting manufacturer. Try again later!"})
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *CatalogHandler) CreateManufacturer(c echo.Context) error {
	id := c.FormValue("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")
	if id == "" || titleEn == "" || titleRu == "" || titleUz == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := model.Manufacturer{ID: id, TitleEn: titleEn, TitleRu: titleRu, TitleUz: titleUz}
	if err := h.Manufacturers.Insert(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in adding new manufacturer, please try again later!"})
	}

	publishChange(c, h.Events, "manufacturers", m.ID, queue.ActionCreated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Manufacturer successfully added!"})
}

func (h *CatalogHandler) UpdateManufacturer(c echo.Context) error {
	manufacturerID := c.Param("id")
	titleEn := c.FormValue("title_en")
	titleRu := c.FormValue("title_ru")
	titleUz := c.FormValue("title_uz")
	if titleEn == "" || titleRu == "" || titleUz == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Manufacturers.Get(ctx, manufacturerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Manufacturer not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing manufacturer!"})
	}

	m := model.Manufacturer{
		ID:      manufacturerID,
		TitleEn: pick(titleEn, current, "title_en"),
		TitleRu: pick(titleRu, current, "title_ru"),
		TitleUz: pick(titleUz, current, "title_uz"),
	}
	if err := h.Manufacturers.Replace(ctx, manufacturerID, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Manufacturer not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing manufacturer!"})
	}

	publishChange(c, h.Events, "manufacturers", manufacturerID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Manufacturer successfully edited!"})
}

func (h *CatalogHandler) DeleteManufacturer(c echo.Context) error {
	manufacturerID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Manufacturers.Delete(ctx, manufacturerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Manufacturer not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting manufacturer!"})
	}

	publishChange(c, h.Events, "manufacturers", manufacturerID, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Manufacturer successfully deleted!"})
}

func (h *CatalogHandler) DeleteManyManufacturers(c echo.Context) error {
	ids, ok := idBatch(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of manufacturersId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Manufacturers.FindByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of manufacturersId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting manufacturers, please try again later!"})
	}

	n, err := h.Manufacturers.DeleteByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Manufacturers not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting manufacturers, please try again later!"})
	}

	for _, d := range docs {
		publishChange(c, h.Events, "manufacturers", strField(d, "id"), queue.ActionDeleted)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d manufacturers deleted!", n)})
}
