package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/flakonuz/catalog-backend/internal/config"
	"github.com/flakonuz/catalog-backend/internal/database"
	"github.com/flakonuz/catalog-backend/internal/handler"
	"github.com/flakonuz/catalog-backend/internal/middleware"
	"github.com/flakonuz/catalog-backend/internal/queue"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/router"
	"github.com/flakonuz/catalog-backend/internal/service"
)

func main() {
	cfg := config.Load()

	client, err := database.Open(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() { _ = database.Close(client) }()

	store := repository.NewStore(client)
	users := repository.NewUserRepo(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.PasswordMarker); err != nil {
		cancel()
		log.Fatalf("admin seed: %v", err)
	}
	cancel()

	products := repository.NewContentRepo(store, repository.DBContent, repository.CollProducts)
	categories := repository.NewContentRepo(store, repository.DBContent, repository.CollCategories)
	materials := repository.NewContentRepo(store, repository.DBContent, repository.CollMaterials)
	colors := repository.NewContentRepo(store, repository.DBContent, repository.CollColors)
	manufacturers := repository.NewContentRepo(store, repository.DBContent, repository.CollManufacturers)
	news := repository.NewContentRepo(store, repository.DBCompany, repository.CollNews)
	settings := repository.NewContentRepo(store, repository.DBCompany, repository.CollSettings)
	images := repository.NewImageRepo(store)

	publisher := service.NewQueuePublisher()
	go func() {
		if err := queue.StartCatalogConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	mw := router.Middleware{
		Auth:       middleware.BearerAuth(users),
		Cache:      middleware.ResponseCache(cacheCfg, rdb),
		Invalidate: middleware.InvalidateCache(cacheCfg, rdb),
		RateLimit:  middleware.RateLimit(config.LoadRateLimitConfig(), rdb),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	auth := handler.NewAuthHandler(cfg, users)
	user := handler.NewUserHandler(cfg, users, images)
	catalog := handler.NewCatalogHandler(cfg, products, categories, materials, colors, manufacturers, images, publisher)
	company := handler.NewCompanyHandler(cfg, news, settings, images, publisher, map[string]repository.ContentRepository{
		"products":      products,
		"categories":    categories,
		"materials":     materials,
		"colors":        colors,
		"manufacturers": manufacturers,
		"news":          news,
	})
	image := handler.NewImageHandler(images)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, user, mw)
	router.RegisterCatalog(e, catalog, mw)
	router.RegisterCompany(e, company, mw)
	router.RegisterImages(e, image, mw)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
