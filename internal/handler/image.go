package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flakonuz/catalog-backend/internal/repository"
)

// ImageHandler serves stored image documents by partition and caller id.
type ImageHandler struct {
	Images repository.ImageRepository
}

func NewImageHandler(images repository.ImageRepository) *ImageHandler {
	if images == nil {
		panic("nil image repository passed to NewImageHandler")
	}
	return &ImageHandler{Images: images}
}

// GetImage handles GET /api/get-image/:kind/:id.
func (h *ImageHandler) GetImage(c echo.Context) error {
	kind := c.Param("kind")
	if !repository.ImageKinds[kind] {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unknown image kind!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	img, err := h.Images.Get(ctx, kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Image not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting image. Try again later!"})
	}

	return c.JSON(http.StatusOK, img)
}
