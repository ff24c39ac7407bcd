package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/bijayshruti/SSC-APP5/internal/config"     // cache configuration for the report routes
	"github.com/bijayshruti/SSC-APP5/internal/handler"    // import the handlers that implement business logic
	"github.com/bijayshruti/SSC-APP5/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems poll this endpoint.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session establishment and exchange does not require an existing
	// token.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh token in the body (revoke one session).
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OPERATOR", "ADMIN"))
	auth.GET("/me", a.Me)
}

// APIHandlers bundles every handler mounted under the protected /v1
// prefix so RegisterAPI keeps a manageable signature.
type APIHandlers struct {
	Exams      *handler.ExamHandler
	References *handler.ReferenceHandler
	Allocs     *handler.AllocationHandler
	EYAllocs   *handler.EYAllocationHandler
	Deleted    *handler.DeletedRecordHandler
	Rates      *handler.RateHandler
	Rosters    *handler.RosterHandler
	Reports    *handler.ReportHandler
	Backups    *handler.BackupHandler
	Admin      *handler.AdminHandler
}

// RegisterAPI registers the allocation API under /v1.  Every route
// requires a valid JWT with the OPERATOR or ADMIN role; the report
// routes additionally sit behind the Redis response cache.
func RegisterAPI(e *echo.Echo, h APIHandlers, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OPERATOR", "ADMIN"),
	)

	// ---- Exams ----
	g.POST("/exams", h.Exams.Create)
	g.GET("/exams", h.Exams.List)
	g.GET("/exams/:key", h.Exams.Get)
	g.DELETE("/exams/:key", h.Exams.Delete)

	// ---- References ----
	g.PUT("/exams/:key/references/:role", h.References.Save)
	g.GET("/exams/:key/references/:role", h.References.Get)
	g.DELETE("/exams/:key/references/:role", h.References.Delete)
	g.GET("/exams/:key/references", h.References.ListByExam)
	g.GET("/references", h.References.ListAll)

	// ---- Coordinator / Flying Squad allocations ----
	g.POST("/exams/:key/allocations", h.Allocs.Create)
	g.GET("/exams/:key/allocations", h.Allocs.List)
	g.DELETE("/exams/:key/allocations/last", h.Allocs.DeleteLast)
	g.POST("/exams/:key/allocations/bulk-delete", h.Allocs.BulkDelete)

	// ---- EY observer allocations ----
	g.POST("/exams/:key/ey-allocations", h.EYAllocs.Create)
	g.GET("/exams/:key/ey-allocations", h.EYAllocs.List)
	g.DELETE("/exams/:key/ey-allocations/last", h.EYAllocs.DeleteLast)
	g.POST("/exams/:key/ey-allocations/bulk-delete", h.EYAllocs.BulkDelete)

	// ---- Deletion log ----
	g.GET("/deleted-records", h.Deleted.List)
	g.DELETE("/deleted-records", h.Deleted.Clear)

	// ---- Rates ----
	g.GET("/rates", h.Rates.Get)
	g.PUT("/rates", h.Rates.Update)

	// ---- Rosters ----
	g.PUT("/rosters/coordinators", h.Rosters.ReplaceCoordinators)
	g.GET("/rosters/coordinators", h.Rosters.ListCoordinators)
	g.PUT("/rosters/venues", h.Rosters.ReplaceVenueSlots)
	g.GET("/rosters/venues", h.Rosters.ListVenueSlots)
	g.GET("/rosters/venues/names", h.Rosters.ListVenues)
	g.PUT("/rosters/ey", h.Rosters.ReplaceEY)
	g.GET("/rosters/ey", h.Rosters.ListEY)

	// ---- Reports (cached) ----
	cached := g.Group("", middleware.NewRedisCache(cacheCfg, rdb))
	cached.GET("/exams/:key/reports/allocations", h.Reports.Allocations)
	cached.GET("/exams/:key/reports/summary", h.Reports.Summary)
	cached.GET("/exams/:key/reports/remuneration", h.Reports.Remuneration)

	// ---- Backups ----
	g.POST("/backups", h.Backups.Create)
	g.GET("/backups", h.Backups.List)
	g.POST("/backups/:name/restore", h.Backups.Restore)

	// ---- Admin ----
	g.DELETE("/admin/data", h.Admin.ResetData)
}
