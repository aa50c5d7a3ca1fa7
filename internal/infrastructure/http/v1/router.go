package v1

import (
	"github.com/gin-gonic/gin"

	"knkadmin/internal/domain"
	"knkadmin/internal/infrastructure/http/v1/handlers"
	"knkadmin/internal/infrastructure/http/v1/middleware"
	"knkadmin/internal/infrastructure/session"
	"knkadmin/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Service resolves entity types and talks to the data source
	Service *domain.EntityService

	// Sessions stores open forms
	Sessions *session.Store

	// Locale is used when the request has no Accept-Language header
	Locale string

	// ReadinessChecks are run by /health/ready
	ReadinessChecks map[string]handlers.ReadinessCheck

	// Debug enables gin debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewStore(0, 0)
	}

	router := gin.New()

	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Locale(cfg.Locale))

	registry := cfg.Service.Registry()
	baseHandler := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(registry, cfg.Sessions, cfg.ReadinessChecks)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	entityHandler := handlers.NewEntityHandler(baseHandler, cfg.Service)
	sessions := handlers.NewFormSessions(cfg.Service, cfg.Sessions, cfg.Logger)

	v1 := router.Group("/api/v1")
	{
		registerMetaRoutes(v1, baseHandler, cfg)
		RegisterEntityRoutes(v1.Group("/entities"), entityHandler)
		RegisterFormRoutes(v1.Group("/forms"), handlers.NewFormHandler(baseHandler, sessions))
	}

	RegisterPageRoutes(router, handlers.NewPageHandler(baseHandler, registry, entityHandler, sessions))

	return router, nil
}

// registerMetaRoutes registers metadata/schema endpoints.
func registerMetaRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewMetadataHandler(base, cfg.Service.Registry())
	meta := rg.Group("/meta")
	{
		meta.GET("", handler.ListEntities)
		meta.GET("/:type", handler.GetEntity)
	}
}
