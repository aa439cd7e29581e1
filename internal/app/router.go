package app

import (
	"net/http"

	"patient-migration-core/internal/app/config"
	"patient-migration-core/internal/infrastructure/database/postgres"
	"patient-migration-core/internal/infrastructure/database/redis"
	"patient-migration-core/internal/infrastructure/logger"
	"patient-migration-core/internal/shared/middleware/core"
	"patient-migration-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

func NewRouter(
	cfg *config.Config,
	loggerMw *logger.LoggerMiddleware,
	corsHandler security.CORSHandler,
	recoveryHandler core.RecoveryHandler,
	pgClient *postgres.Client,
	legacyClient *postgres.LegacyClient,
	redisClient *redis.Client,
) *gin.Engine {
	// Set Gin mode based on environment
	configureGinMode(cfg.Environment)

	// Create router without default middleware for custom configuration
	r := gin.New()

	// Add custom middlewares dans l'ordre d'importance
	r.Use(loggerMw.GinLogger())
	r.Use(gin.HandlerFunc(recoveryHandler))
	r.Use(gin.HandlerFunc(corsHandler))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	// Readiness : toutes les dépendances critiques doivent répondre
	r.GET("/ready", func(c *gin.Context) {
		ctx := c.Request.Context()

		checks := gin.H{
			"postgres_target": "ok",
			"postgres_legacy": "ok",
			"redis":           "ok",
		}
		ready := true

		if err := pgClient.Ping(ctx); err != nil {
			checks["postgres_target"] = err.Error()
			ready = false
		}
		if err := legacyClient.Ping(ctx); err != nil {
			checks["postgres_legacy"] = err.Error()
			ready = false
		}
		if err := redisClient.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			ready = false
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"success": ready,
			"data": gin.H{
				"status": checks,
			},
		})
	})

	// API versioning
	apiV1 := r.Group("/api/v1")
	{
		// System group
		system := apiV1.Group("/system")
		{
			system.GET("/info", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"data": gin.H{
						"environment": cfg.Environment,
						"version":     "0.1.0",
					},
				})
			})
		}
	}

	// Les routes du domaine migration sont enregistrées par son module Fx

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "staging":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		// Mode debug par défaut pour développement local
		gin.SetMode(gin.DebugMode)
	}
}
