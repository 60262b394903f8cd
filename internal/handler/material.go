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

// Materials carry no images, so their handlers are the plain CRUD shape.

func (h *CatalogHandler) ListMaterials(c echo.Context) error {
	page, limit := pageParams(c)
	search := c.QueryParam("search")
	searchParam := c.QueryParam("searchParam")
	if searchParam == "" {
		searchParam = "title"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Materials.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting materials. Try again later!"})
	}

	filtered := filterBySubstring(docs, searchParam, search)
	paged, pg := paginate(filtered, page, limit)

	return c.JSON(http.StatusOK, echo.Map{"materials": paged, "pagination": pg})
}

func (h *CatalogHandler) GetMaterial(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Materials.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Material not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting material. Try again later!"})
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *CatalogHandler) CreateMaterial(c echo.Context) error {
	id := c.FormValue("id")
	title := c.FormValue("title")
	if id == "" || title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := model.Material{ID: id, Title: title}
	if err := h.Materials.Insert(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in adding new material, please try again later!"})
	}

	publishChange(c, h.Events, "materials", m.ID, queue.ActionCreated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Material successfully added!"})
}

func (h *CatalogHandler) UpdateMaterial(c echo.Context) error {
	materialID := c.Param("id")
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Materials.Get(ctx, materialID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Material not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing material!"})
	}

	m := model.Material{ID: materialID, Title: pick(title, current, "title")}
	if err := h.Materials.Replace(ctx, materialID, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Material not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in editing material!"})
	}

	publishChange(c, h.Events, "materials", materialID, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"message": "Material successfully edited!"})
}

func (h *CatalogHandler) DeleteMaterial(c echo.Context) error {
	materialID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Materials.Delete(ctx, materialID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Material not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting material!"})
	}

	publishChange(c, h.Events, "materials", materialID, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "Material successfully deleted!"})
}

func (h *CatalogHandler) DeleteManyMaterials(c echo.Context) error {
	ids, ok := idBatch(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of materialsId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Materials.FindByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or empty array of materialsId"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting materials, please try again later!"})
	}

	n, err := h.Materials.DeleteByStorageIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrNoneDeleted) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Materials not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in deleting materials, please try again later!"})
	}

	for _, d := range docs {
		publishChange(c, h.Events, "materials", strField(d, "id"), queue.ActionDeleted)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("%d materials deleted!", n)})
}
