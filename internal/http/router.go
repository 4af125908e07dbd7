// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tvirti/internal/http/handlers"
	"tvirti/internal/http/middleware"
	"tvirti/internal/infra"
	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/order"
	"tvirti/internal/modules/pricing"
)

type Services struct {
	Orders  *order.Service
	Drivers *driver.Service
	Pricing *pricing.Service
}

// NewRouter registers the public booking routes and the admin API. Admin routes require a
// Firebase ID token whose role claim equals adminRole.
func NewRouter(svc Services, verifier infra.TokenVerifier, adminRole string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	orderHandler := handlers.NewOrderHandler(svc.Orders, svc.Drivers)
	vehicleHandler := handlers.NewVehicleHandler()
	settingsHandler := handlers.NewSettingsHandler(svc.Pricing)
	driverHandler := handlers.NewDriverHandler(svc.Drivers)

	api := r.Group("/api")
	api.GET("/pricing", settingsHandler.Prices)
	api.GET("/evacuator/questions", vehicleHandler.Questions)
	api.POST("/evacuator/classify", vehicleHandler.Classify)
	api.POST("/quotes", orderHandler.Quote)
	api.POST("/orders", orderHandler.Create)

	admin := api.Group("/admin", middleware.Auth(verifier), middleware.RequireRole(adminRole))
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.PATCH("/orders/:id", orderHandler.Update)
	admin.DELETE("/orders/:id", orderHandler.Delete)
	admin.POST("/orders/:id/assign", orderHandler.Assign)
	admin.POST("/orders/:id/unassign", orderHandler.Unassign)
	admin.POST("/orders/:id/transition", orderHandler.Transition)
	admin.GET("/orders/:id/events", orderHandler.Events)
	admin.GET("/orders/:id/candidates", orderHandler.Candidates)

	admin.GET("/drivers", driverHandler.List)
	admin.POST("/drivers", driverHandler.Create)
	admin.GET("/drivers/:id", driverHandler.Get)
	admin.PATCH("/drivers/:id", driverHandler.Update)
	admin.DELETE("/drivers/:id", driverHandler.Delete)

	admin.GET("/pricing/settings", settingsHandler.Get)
	admin.PUT("/pricing/settings", settingsHandler.Update)

	return r
}
