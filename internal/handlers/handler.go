package handlers

import (
	"net/http"

	"home_inventory/internal/logger"
	"home_inventory/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CookieOptions are the deployment-dependent flags of the session cookie.
// HttpOnly is not an option; the session cookie always carries it.
type CookieOptions struct {
	Secure    bool
	CrossSite bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	cookies  CookieOptions
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, cookies CookieOptions, log *logger.Logger) *Handler {
	return &Handler{services: services, cookies: cookies, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Registration and login are the only unauthenticated endpoints.
	router.POST("/auth", h.register)
	router.GET("/auth", h.login) // legacy clients log in with GET
	router.PUT("/auth", h.login)

	// Everything else is gated by the session cookie.
	protected := router.Group("", h.sessionMiddleware)
	{
		protected.PUT("/authinfo", h.changePassword)
		protected.DELETE("/authinfo", h.deleteAccount)
		protected.GET("/user", h.getProfile)
		protected.PUT("/user", h.updateProfile)
	}

	return router
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
