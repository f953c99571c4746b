// Package router wires HTTP routes to their handlers and access rules.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/handler"
	"github.com/iliyamo/rental-backoffice/internal/middleware"
	"github.com/iliyamo/rental-backoffice/internal/model"
)

// Handlers collects every handler the API exposes so registration stays a
// single call from main.
type Handlers struct {
	Auth         *handler.AuthHandler
	Reservations *handler.ReservationHandler
	Departments  *handler.DepartmentHandler
	Costs        *handler.CostHandler
	Platforms    *handler.PlatformHandler
	Users        *handler.UserHandler
	Blacklist    *handler.BlacklistHandler
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the full API surface.
//
// /v1/auth holds the session endpoints that do not require a token. The
// protected tree under /v1 splits three ways: every authenticated role may
// read, editors and admins may write domain data, and only admins manage
// operator accounts.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)
	g.POST("/logout", h.Auth.Logout)

	// Read-only endpoints, any authenticated role.
	read := e.Group("/v1")
	read.Use(middleware.JWTAuth(jwtSecret))
	read.Use(middleware.RequireRole(model.RoleAdmin, model.RoleEditor, model.RoleViewer))
	read.GET("/me", h.Auth.Me)
	read.POST("/logout", h.Auth.Logout) // bearer-based revoke-all

	read.GET("/reservations", h.Reservations.List)
	read.GET("/reservations/:id", h.Reservations.Get)
	read.GET("/reservations/:id/net-profit", h.Reservations.NetProfit)
	read.GET("/reservations/:id/costs", h.Costs.ListForReservation)
	read.GET("/reservation-costs", h.Costs.List)
	read.GET("/reservation-costs/:id", h.Costs.Get)
	read.GET("/departments", h.Departments.List)
	read.GET("/departments/:id", h.Departments.Get)
	read.GET("/departments/:id/inventory", h.Departments.ListInventory)
	read.GET("/platforms", h.Platforms.List)
	read.GET("/platforms/:id", h.Platforms.Get)
	read.GET("/blacklist", h.Blacklist.List)
	read.GET("/blacklist/:id", h.Blacklist.Get)

	// Domain writes, editor and admin.
	write := e.Group("/v1")
	write.Use(middleware.JWTAuth(jwtSecret))
	write.Use(middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	write.POST("/reservations", h.Reservations.Create)
	// Updates are merge-style either way: omitted fields keep their value.
	write.PUT("/reservations/:id", h.Reservations.Update)
	write.PATCH("/reservations/:id", h.Reservations.Update)
	write.DELETE("/reservations/:id", h.Reservations.Delete)
	write.POST("/reservation-costs", h.Costs.Create)
	write.PUT("/reservation-costs/:id", h.Costs.Update)
	write.DELETE("/reservation-costs/:id", h.Costs.Delete)
	write.POST("/departments", h.Departments.Create)
	write.PUT("/departments/:id", h.Departments.Update)
	write.DELETE("/departments/:id", h.Departments.Delete)
	write.POST("/departments/:id/inventory", h.Departments.AddInventory)
	write.PUT("/inventory/:id", h.Departments.UpdateInventory)
	write.DELETE("/inventory/:id", h.Departments.DeleteInventory)
	write.POST("/platforms", h.Platforms.Create)
	write.PUT("/platforms/:id", h.Platforms.Update)
	write.DELETE("/platforms/:id", h.Platforms.Delete)
	write.POST("/blacklist", h.Blacklist.Create)
	write.DELETE("/blacklist/:id", h.Blacklist.Delete)

	// Account management, admin only.
	admin := e.Group("/v1/users")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.Users.Create)
	admin.GET("", h.Users.List)
	admin.GET("/:id", h.Users.Get)
	admin.PUT("/:id", h.Users.Update)
	admin.DELETE("/:id", h.Users.Delete)
}
