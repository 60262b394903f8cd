package router

import (
	"github.com/labstack/echo/v4"

	"github.com/flakonuz/catalog-backend/internal/handler"
)

// Middleware bundles the cross-cutting middleware the route groups share.
// Auth guards mutating and account routes; Cache and RateLimit wrap reads,
// Invalidate drops cached reads after successful mutations.
type Middleware struct {
	Auth       echo.MiddlewareFunc
	Cache      echo.MiddlewareFunc
	Invalidate echo.MiddlewareFunc
	RateLimit  echo.MiddlewareFunc
}

// RegisterRoutes registers routes that require no authentication. Currently
// it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers login, the token probe and the admin profile
// routes. Profile routes require a valid bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, mw Middleware) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login, mw.RateLimit)
	g.GET("/userme", a.Me)

	user := e.Group("/api/user", mw.Auth)
	user.PUT("/profile/:id", u.UpdateProfile)
	user.PUT("/profile-password/:id", u.UpdatePassword)
	user.POST("/profile-photo/:id", u.UpdateProfileImage)
	user.DELETE("/profile-photo/:id", u.DeleteProfileImage)
}

// RegisterCatalog registers the five catalog resources. Reads are public and
// cached; writes require authentication and invalidate the read cache.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw Middleware) {
	products := e.Group("/api/products")
	products.GET("/list", h.ListProducts, mw.Cache)
	products.GET("/list/:id", h.GetProduct, mw.Cache)
	products.POST("/product", h.CreateProduct, mw.Auth, mw.Invalidate)
	products.PUT("/product/:id", h.UpdateProduct, mw.Auth, mw.Invalidate)
	products.DELETE("/product/delete/:id", h.DeleteProduct, mw.Auth, mw.Invalidate)
	products.DELETE("/product/delete-many/:id", h.DeleteManyProducts, mw.Auth, mw.Invalidate)

	categories := e.Group("/api/categories")
	categories.GET("/list", h.ListCategories, mw.Cache)
	categories.GET("/list/:id", h.GetCategory, mw.Cache)
	categories.POST("/category", h.CreateCategory, mw.Auth, mw.Invalidate)
	categories.PUT("/category/:id", h.UpdateCategory, mw.Auth, mw.Invalidate)
	categories.DELETE("/category/delete/:id", h.DeleteCategory, mw.Auth, mw.Invalidate)
	categories.DELETE("/category/delete-many/:id", h.DeleteManyCategories, mw.Auth, mw.Invalidate)

	materials := e.Group("/api/materials")
	materials.GET("/list", h.ListMaterials, mw.Cache)
	materials.GET("/list/:id", h.GetMaterial, mw.Cache)
	materials.POST("/material", h.CreateMaterial, mw.Auth, mw.Invalidate)
	materials.PUT("/material/:id", h.UpdateMaterial, mw.Auth, mw.Invalidate)
	materials.DELETE("/material/delete/:id", h.DeleteMaterial, mw.Auth, mw.Invalidate)
	materials.DELETE("/material/delete-many/:id", h.DeleteManyMaterials, mw.Auth, mw.Invalidate)

	colors := e.Group("/api/colors")
	colors.GET("/list", h.ListColors, mw.Cache)
	colors.GET("/list/:id", h.GetColor, mw.Cache)
	colors.POST("/color", h.CreateColor, mw.Auth, mw.Invalidate)
	colors.PUT("/color/:id", h.UpdateColor, mw.Auth, mw.Invalidate)
	colors.DELETE("/color/delete/:id", h.DeleteColor, mw.Auth, mw.Invalidate)
	colors.DELETE("/color/delete-many/:id", h.DeleteManyColors, mw.Auth, mw.Invalidate)

	manufacturers := e.Group("/api/manufacturers")
	manufacturers.GET("/list", h.ListManufacturers, mw.Cache)
	manufacturers.GET("/list/:id", h.GetManufacturer, mw.Cache)
	manufacturers.POST("/manufacturer", h.CreateManufacturer, mw.Auth, mw.Invalidate)
	manufacturers.PUT("/manufacturer/:id", h.UpdateManufacturer, mw.Auth, mw.Invalidate)
	manufacturers.DELETE("/manufacturer/delete/:id", h.DeleteManufacturer, mw.Auth, mw.Invalidate)
	manufacturers.DELETE("/manufacturer/delete-many/:id", h.DeleteManyManufacturers, mw.Auth, mw.Invalidate)
}

// RegisterCompany registers the about section: settings, news, statistics,
// the feedback relay and the catalog download.
func RegisterCompany(e *echo.Echo, h *handler.CompanyHandler, mw Middleware) {
	about := e.Group("/api/about")
	about.GET("", h.GetSettings, mw.Cache)
	about.PUT("/update/:id", h.UpdateSettings, mw.Auth, mw.Invalidate)
	about.POST("/feedback", h.Feedback, mw.RateLimit)
	about.GET("/statistics", h.Statistics, mw.Auth)
	about.GET("/catalog", h.CatalogPDF)

	about.GET("/news/list", h.ListNews, mw.Cache)
	about.GET("/news/:id", h.GetNews, mw.Cache)
	about.POST("/news", h.CreateNews, mw.Auth, mw.Invalidate)
	about.PUT("/news/:id", h.UpdateNews, mw.Auth, mw.Invalidate)
	about.DELETE("/news/delete/:id", h.DeleteNews, mw.Auth, mw.Invalidate)
	about.DELETE("/news/delete-many/:id", h.DeleteManyNews, mw.Auth, mw.Invalidate)
}

// RegisterImages registers the public image read endpoint.
func RegisterImages(e *echo.Echo, h *handler.ImageHandler, mw Middleware) {
	e.GET("/api/get-image/:kind/:id", h.GetImage, mw.Cache)
}
