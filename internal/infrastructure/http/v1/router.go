// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/domain/audit"
	"stockroom/internal/domain/inventory"
	"stockroom/internal/infrastructure/http/v1/handlers"
	"stockroom/internal/infrastructure/http/v1/middleware"
	"stockroom/internal/metadata"
	"stockroom/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Service owns the item collection
	Service *inventory.Service

	// Journal backs the history endpoints; optional
	Journal *audit.Journal

	// Metadata describes entities for form builders; defaults to ItemMetadata
	Metadata *metadata.Registry

	// Logger for request logging
	Logger *logger.Logger

	// Mode is the gin mode; defaults to release
	Mode string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	healthHandler := handlers.NewHealthHandler(cfg.Service, cfg.Journal)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	v1 := router.Group("/api/v1")
	{
		RegisterItemRoutes(v1.Group("/items"), handlers.NewItemHandler(base, cfg.Service, cfg.Journal))

		registry := cfg.Metadata
		if registry == nil {
			registry = ItemMetadata()
		}
		metaHandler := handlers.NewMetadataHandler(base, registry)
		meta := v1.Group("/meta")
		meta.GET("", metaHandler.ListEntities)
		meta.GET("/:name", metaHandler.GetEntity)
	}

	return router
}

// ItemMetadata returns a registry describing the item request body, with the
// closed category and status sets as options.
func ItemMetadata() *metadata.Registry {
	reg := metadata.NewRegistry()
	reg.Register(metadata.Inspect(inventory.Item{}, "item",
		metadata.WithEnum(inventory.Categories),
		metadata.WithEnum(inventory.Statuses),
	))
	return reg
}
