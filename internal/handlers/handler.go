package handlers

import (
	"therm_hub/internal/logger"
	"therm_hub/internal/provider"
	"therm_hub/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// VersionHeader is set on every response.
const VersionHeader = "X-Therm-Hub-Version"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), versionMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Unauthenticated
	router.GET("/health", h.health)
	router.GET("/time", h.serverTime)
	h.registerAuthRoutes(router)

	// Everything else needs a bearer token
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/", h.authMiddleware)
	{
		api.GET("/now", h.now)
		api.GET("/past", h.past)
		api.POST("/refresh", h.refresh)
		api.GET("/ws", h.wsConnect)
		h.registerInstallRoutes(api)
	}
}

func (h *Handler) registerInstallRoutes(api *gin.RouterGroup) {
	install := api.Group("/install")
	{
		install.GET("/1", h.install1)
		// Query example: /install/2?code=AbCdEf
		install.GET("/2", h.install2)
	}
}

func versionMiddleware(c *gin.Context) {
	c.Header(VersionHeader, provider.Version)
	c.Next()
}
