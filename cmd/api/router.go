package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"membership-backend/internal/domains/utilisateur/model"
	"membership-backend/internal/shared/middleware"
	"membership-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupMembreRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UtilisateurHandler.Register)
		auth.POST("/login", c.UtilisateurHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UtilisateurHandler.GetProfile)
	}
}

func setupMembreRoutes(v1 *gin.RouterGroup, c *container.Container) {
	gestion := string(model.RoleAdmin)
	secretariat := []string{string(model.RoleAdmin), string(model.RoleSecretaire)}
	lecture := []string{string(model.RoleAdmin), string(model.RoleSecretaire), string(model.RoleMembre)}

	membres := v1.Group("/membres")
	membres.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		membres.POST("", middleware.RequireRoles(secretariat...), c.MembreHandler.CreerMembre)
		membres.GET("", middleware.RequireRoles(lecture...), c.MembreHandler.ListerMembres)
		membres.GET("/actifs", middleware.RequireRoles(lecture...), c.MembreHandler.ListerMembresActifs)
		membres.GET("/:id", middleware.RequireRoles(lecture...), c.MembreHandler.GetMembre)
		membres.GET("/code/:code", middleware.RequireRoles(lecture...), c.MembreHandler.GetMembreParCode)
		membres.GET("/:id/filleuls", middleware.RequireRoles(lecture...), c.MembreHandler.ListerFilleuls)
		membres.PUT("/:id", middleware.RequireRoles(secretariat...), c.MembreHandler.MettreAJourMembre)
		membres.PUT("/:id/statut", middleware.RequireRoles(secretariat...), c.MembreHandler.ChangerStatut)
		membres.POST("/:id/desactiver", middleware.RequireRoles(secretariat...), c.MembreHandler.DesactiverMembre)
		membres.POST("/:id/photo", middleware.RequireRoles(secretariat...), c.MembreHandler.UploadPhoto)
		membres.DELETE("/:id", middleware.RequireRoles(gestion), c.MembreHandler.SupprimerMembre)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRoles(string(model.RoleAdmin)),
	)
	{
		admin.PUT("/utilisateurs/:id/role", c.UtilisateurHandler.ChangeRole)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":      "ok",
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": c.Config.App.Environment,
		}

		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			// cache loss degrades performance, not availability
			cacheStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, health)
	}
}
