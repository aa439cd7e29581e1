package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"patient-migration-core/internal/app/config"
	"patient-migration-core/internal/modules/migration/dto"
	"patient-migration-core/internal/modules/migration/services"
)

// MigrationController expose les endpoints de pilotage de la migration
type MigrationController struct {
	migration   *services.MigrationService
	reviewQueue *services.ReviewQueueService
	config      *config.Config
}

// NewMigrationController crée une nouvelle instance du controller
func NewMigrationController(
	migration *services.MigrationService,
	reviewQueue *services.ReviewQueueService,
	cfg *config.Config,
) *MigrationController {
	return &MigrationController{
		migration:   migration,
		reviewQueue: reviewQueue,
		config:      cfg,
	}
}

// resolvePracticeID détermine le cabinet cible : celui de la requête,
// sinon le cabinet par défaut configuré (MIGRATION_DEFAULT_PRACTICE_ID)
func resolvePracticeID(requested, defaultID string) (uuid.UUID, error) {
	raw := requested
	if raw == "" {
		raw = defaultID
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("practice_id absent et aucun cabinet par défaut configuré")
	}

	practiceID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("practice_id invalide (UUID attendu)")
	}
	return practiceID, nil
}

// statusForRunError réserve le 409 au cas "déjà en cours", les échecs
// du pipeline remontent en 500
func statusForRunError(err error) int {
	if errors.Is(err, services.ErrMigrationInProgress) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RunMigration déclenche une exécution complète de migration
// POST /api/v1/migration/run
func (c *MigrationController) RunMigration(ctx *gin.Context) {
	var req dto.RunMigrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Requête invalide",
			"details": err.Error(),
		})
		return
	}

	// Vérification du mot de passe administrateur
	hash := c.config.System.AdminPasswordHash
	if hash == "" {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Déclenchement de migration non configuré (MIGRATION_ADMIN_PASSWORD_HASH manquant)",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.AdminPassword)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"error": "Mot de passe administrateur invalide",
		})
		return
	}

	practiceID, err := resolvePracticeID(req.PracticeID, c.config.System.DefaultPracticeID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	response, err := c.migration.RunMigration(ctx.Request.Context(), practiceID, req.DryRun)
	if err != nil {
		ctx.JSON(statusForRunError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetRunStatus retourne l'état d'une exécution
// GET /api/v1/migration/runs/:runId
func (c *MigrationController) GetRunStatus(ctx *gin.Context) {
	runID := ctx.Param("runId")

	status, err := c.migration.GetRunStatus(ctx.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error": "Exécution inconnue ou expirée",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur récupération statut",
		})
		return
	}

	counters, err := c.migration.GetRunCounters(ctx.Request.Context(), runID)
	if err != nil {
		counters = map[string]string{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":   status,
		"counters": counters,
	})
}

// GetLastRun retourne l'état de la dernière exécution déclenchée
// GET /api/v1/migration/last-run
func (c *MigrationController) GetLastRun(ctx *gin.Context) {
	runID, err := c.migration.GetLastRunID(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error": "Aucune migration exécutée",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur récupération dernière exécution",
		})
		return
	}

	ctx.Params = append(ctx.Params, gin.Param{Key: "runId", Value: runID})
	c.GetRunStatus(ctx)
}

// GetReport retourne le rapport archivé d'une exécution
// GET /api/v1/migration/runs/:runId/report
func (c *MigrationController) GetReport(ctx *gin.Context) {
	runID := ctx.Param("runId")

	report, err := c.reviewQueue.GetReport(ctx.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error": "Rapport introuvable",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur récupération rapport",
		})
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// ListReviewQueue retourne les candidats en attente de revue humaine
// GET /api/v1/migration/review-queue
func (c *MigrationController) ListReviewQueue(ctx *gin.Context) {
	limit := int64(50)
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 500 {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "limit invalide (1-500 attendu)",
			})
			return
		}
		limit = parsed
	}

	items, err := c.reviewQueue.ListPending(ctx.Request.Context(), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur récupération file de revue",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}
