package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/server/http/handlers"
	"github.com/rvleeuwen/laadscan/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.WarehouseFacade, imports handlers.ImportQueue, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	scanHandler := handlers.NewScanHandler(facade)
	vehicleHandler := handlers.NewVehicleHandler(facade)
	heavyHandler := handlers.NewHeavyHandler(facade)
	importHandler := handlers.NewImportHandler(imports)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot", authHandler.Forgot)
	auth.POST("/reset", authHandler.Reset)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(facade))
	protected.POST("/scans", scanHandler.Process)
	protected.POST("/scans/decrement", scanHandler.Decrement)
	protected.POST("/scans/missing", scanHandler.Missing)
	protected.GET("/vehicles", vehicleHandler.List)
	protected.GET("/vehicles/:vehicle", vehicleHandler.Board)
	protected.GET("/vehicles/:vehicle/missing", vehicleHandler.MissingReports)
	protected.GET("/heavy-products", heavyHandler.List)

	planner := protected.Group("")
	planner.Use(middleware.RequireRoles(model.RolePlanner, model.RoleAdmin))
	planner.POST("/imports", importHandler.Submit)
	planner.GET("/imports/:id", importHandler.Status)

	admin := protected.Group("")
	admin.Use(middleware.RequireRoles(model.RoleAdmin))
	admin.POST("/heavy-products", heavyHandler.Create)
	admin.DELETE("/heavy-products/:id", heavyHandler.Delete)
	admin.POST("/users", authHandler.CreateUser)

	return engine
}
