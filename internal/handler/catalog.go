package handler

import (
	"github.com/flakonuz/catalog-backend/internal/config"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/service"
)

// CatalogHandler bundles the content repositories for the catalog resources
// (products, categories, materials, colors, manufacturers) together with the
// image store and the audit publisher.
type CatalogHandler struct {
	Cfg           config.Config
	Products      repository.ContentRepository
	Categories    repository.ContentRepository
	Materials     repository.ContentRepository
	Colors        repository.ContentRepository
	Manufacturers repository.ContentRepository
	Images        repository.ImageRepository
	Events        service.EventPublisher
}

func NewCatalogHandler(
	cfg config.Config,
	products, categories, materials, colors, manufacturers repository.ContentRepository,
	images repository.ImageRepository,
	events service.EventPublisher,
) *CatalogHandler {
	if products == nil || categories == nil || materials == nil || colors == nil || manufacturers == nil || images == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		Cfg:           cfg,
		Products:      products,
		Categories:    categories,
		Materials:     materials,
		Colors:        colors,
		Manufacturers: manufacturers,
		Images:        images,
		Events:        events,
	}
}
