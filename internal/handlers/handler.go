package handlers

import (
	"net/http"

	"recipebook/internal/logger"
	"recipebook/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Redirect targets shared across handlers.
const (
	pathHome    = "/"
	pathLogin   = "/auth/login"
	pathRecipes = "/recipes"
)

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
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Public home: all recipes
	router.GET("/", h.home)

	h.registerAuthRoutes(router)
	h.registerRecipeRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth", h.identifyUser)
	{
		auth.GET("/register", h.redirectIfAuthenticated, h.registerForm)
		auth.POST("/register", h.redirectIfAuthenticated, h.register)
		auth.GET("/login", h.redirectIfAuthenticated, h.loginForm)
		auth.POST("/login", h.redirectIfAuthenticated, h.login)
		auth.GET("/logout", h.requireUser, h.logout)
		auth.GET("/change_password", h.requireUser, h.changePasswordForm)
		auth.POST("/change_password", h.requireUser, h.changePassword)
		auth.GET("/forgot_password", h.forgotPasswordForm)
		auth.POST("/forgot_password", h.forgotPassword)
		auth.GET("/reset_password/:token", h.resetPasswordForm)
		auth.POST("/reset_password/:token", h.resetPassword)
	}
}

func (h *Handler) registerRecipeRoutes(r *gin.Engine) {
	recipes := r.Group("/recipes", h.identifyUser)
	{
		recipes.GET("", h.requireUser, h.listOwned)
		recipes.GET("/create", h.requireUser, h.createRecipeForm)
		recipes.POST("/create", h.requireUser, h.createRecipe)
		recipes.GET("/:id", h.viewRecipe)
		recipes.GET("/:id/edit", h.requireUser, h.editRecipeForm)
		recipes.POST("/:id/edit", h.requireUser, h.editRecipe)
		recipes.POST("/:id/delete", h.requireUser, h.deleteRecipe)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
