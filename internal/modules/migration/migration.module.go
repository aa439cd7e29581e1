package migration

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"patient-migration-core/internal/modules/migration/controllers"
	"patient-migration-core/internal/modules/migration/services"
)

// Module regroupe tous les providers du domaine Migration
var Module = fx.Options(
	// Services
	fx.Provide(services.NewExtractionService),
	fx.Provide(services.NewPersistenceService),
	fx.Provide(services.NewReviewQueueService),
	fx.Provide(services.NewMigrationService),

	// Controllers
	fx.Provide(controllers.NewMigrationController),

	// Configuration des routes
	fx.Invoke(RegisterMigrationRoutes),
)

// RegisterMigrationRoutes configure les routes Gin pour Migration
func RegisterMigrationRoutes(
	r *gin.Engine,
	ctrl *controllers.MigrationController,
) {
	api := r.Group("/api/v1/migration")

	{
		// Déclenchement d'une migration - POST /api/v1/migration/run
		// Protégé par mot de passe administrateur (bcrypt)
		api.POST("/run", ctrl.RunMigration)

		// Dernière exécution - GET /api/v1/migration/last-run
		api.GET("/last-run", ctrl.GetLastRun)

		// Statut d'une exécution - GET /api/v1/migration/runs/:runId
		api.GET("/runs/:runId", ctrl.GetRunStatus)

		// Rapport archivé - GET /api/v1/migration/runs/:runId/report
		api.GET("/runs/:runId/report", ctrl.GetReport)

		// File de revue humaine - GET /api/v1/migration/review-queue
		api.GET("/review-queue", ctrl.ListReviewQueue)
	}
}
