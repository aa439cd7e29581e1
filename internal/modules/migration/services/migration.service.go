package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"patient-migration-core/internal/infrastructure/database/redis"
	dedupservices "patient-migration-core/internal/modules/deduplication/services"
	"patient-migration-core/internal/modules/migration/dto"
	"patient-migration-core/internal/shared/utils"
)

const (
	// Durée de rétention des statuts d'exécution dans Redis
	runStatusTTL = 24 * time.Hour

	// Durée maximale du verrou d'exécution
	runLockTTL = 2 * time.Hour
)

// ErrMigrationInProgress indique qu'une exécution est déjà active
// (localement ou sur une autre instance via le verrou Redis)
var ErrMigrationInProgress = errors.New("une migration est déjà en cours")

// MigrationService orchestre le pipeline complet de migration :
// extraction → déduplication → persistance → file de revue → rapport
type MigrationService struct {
	extraction  *ExtractionService
	dedup       *dedupservices.DeduplicationService
	persistence *PersistenceService
	reviewQueue *ReviewQueueService
	redis       *redis.Client

	mu         sync.Mutex
	inProgress bool
}

// NewMigrationService crée une nouvelle instance du service
func NewMigrationService(
	extraction *ExtractionService,
	dedup *dedupservices.DeduplicationService,
	persistence *PersistenceService,
	reviewQueue *ReviewQueueService,
	redisClient *redis.Client,
) *MigrationService {
	return &MigrationService{
		extraction:  extraction,
		dedup:       dedup,
		persistence: persistence,
		reviewQueue: reviewQueue,
		redis:       redisClient,
	}
}

// RunMigration exécute une migration complète pour un cabinet donné.
// Une seule exécution est autorisée à la fois, y compris entre instances
// (verrou Redis).
func (s *MigrationService) RunMigration(ctx context.Context, practiceID uuid.UUID, dryRun bool) (*dto.RunMigrationResponse, error) {
	// 1. Garde locale contre les exécutions concurrentes
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return nil, ErrMigrationInProgress
	}
	s.inProgress = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inProgress = false
		s.mu.Unlock()
	}()

	runID := uuid.New().String()

	// 2. Verrou distribué
	acquired, err := s.redis.SetNX(ctx, utils.MigrationLockKey(), runID, runLockTTL)
	if err != nil {
		return nil, fmt.Errorf("erreur acquisition verrou migration: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w sur une autre instance", ErrMigrationInProgress)
	}
	defer func() {
		if delErr := s.redis.Del(context.Background(), utils.MigrationLockKey()); delErr != nil {
			fmt.Printf("[MIGRATION] ⚠️ Erreur libération verrou: %v\n", delErr)
		}
	}()

	startedAt := time.Now()
	fmt.Printf("[MIGRATION] 🚀 Démarrage migration %s (practice=%s, dry_run=%v)\n", runID, practiceID, dryRun)

	if err := s.setRunStatus(ctx, &dto.MigrationRunStatus{
		RunID:     runID,
		Status:    dto.RunStatusRunning,
		StartedAt: startedAt,
	}); err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, utils.MigrationLastRunKey(), runID, 0); err != nil {
		return nil, fmt.Errorf("erreur enregistrement dernière exécution: %w", err)
	}

	report, err := s.execute(ctx, runID, practiceID, dryRun, startedAt)
	if err != nil {
		s.failRun(runID, startedAt, err)
		return nil, err
	}

	finishedAt := report.FinishedAt
	if statusErr := s.setRunStatus(ctx, &dto.MigrationRunStatus{
		RunID:      runID,
		Status:     dto.RunStatusCompleted,
		StartedAt:  startedAt,
		FinishedAt: &finishedAt,
	}); statusErr != nil {
		fmt.Printf("[MIGRATION] ⚠️ Erreur mise à jour statut final: %v\n", statusErr)
	}

	fmt.Printf("[MIGRATION] ✅ Migration %s terminée en %dms (%d fusionnés, %d en revue)\n",
		runID, report.DurationMs, report.MergedCount, report.ReviewQueueCount)

	return &dto.RunMigrationResponse{RunID: runID, Report: report}, nil
}

func (s *MigrationService) execute(ctx context.Context, runID string, practiceID uuid.UUID, dryRun bool, startedAt time.Time) (*dto.MigrationReport, error) {
	// 3. Extraction des patients du système legacy
	records, err := s.extraction.ExtractPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur extraction patients legacy: %w", err)
	}
	fmt.Printf("[MIGRATION] %d patients extraits du système legacy\n", len(records))

	// 4. Déduplication
	result := s.dedup.Deduplicate(records)

	if err := s.redis.HSet(ctx, utils.MigrationRunCountersKey(runID),
		"source", len(records),
		"candidates", result.TotalCandidates,
		"automatic", result.AutomaticCount,
		"manual", result.ManualCount,
		"skip", result.SkipCount,
	); err != nil {
		return nil, fmt.Errorf("erreur enregistrement compteurs: %w", err)
	}
	if err := s.redis.Expire(ctx, utils.MigrationRunCountersKey(runID), runStatusTTL); err != nil {
		return nil, fmt.Errorf("erreur expiration compteurs: %w", err)
	}

	// 5. Persistance dans le schéma cible (sauf dry-run)
	persisted := 0
	if !dryRun {
		persisted, err = s.persistence.PersistMergedRecords(ctx, practiceID, result.MergedRecords)
		if err != nil {
			return nil, fmt.Errorf("erreur persistance patients fusionnés: %w", err)
		}

		if err := s.reviewQueue.EnqueueCandidates(ctx, runID, result.ReviewQueue); err != nil {
			return nil, fmt.Errorf("erreur alimentation file de revue: %w", err)
		}
	}

	// 6. Rapport d'exécution
	var mergedLegacyIDs []int64
	for _, patient := range result.MergedRecords {
		mergedLegacyIDs = append(mergedLegacyIDs, patient.Provenance.LegacyIDs...)
	}

	finishedAt := time.Now()
	report := &dto.MigrationReport{
		RunID:              runID,
		PracticeID:         practiceID.String(),
		DryRun:             dryRun,
		SourceCount:        len(records),
		TotalCandidates:    result.TotalCandidates,
		AutomaticCount:     result.AutomaticCount,
		ManualCount:        result.ManualCount,
		SkipCount:          result.SkipCount,
		MergedCount:        len(result.MergedRecords),
		PersistedCount:     persisted,
		ReviewQueueCount:   len(result.ReviewQueue),
		ProvenanceChecksum: utils.ProvenanceChecksum(mergedLegacyIDs),
		StartedAt:          startedAt,
		FinishedAt:         finishedAt,
		DurationMs:         finishedAt.Sub(startedAt).Milliseconds(),
	}

	if !dryRun {
		if err := s.reviewQueue.SaveReport(ctx, report); err != nil {
			return nil, fmt.Errorf("erreur archivage rapport: %w", err)
		}
	}

	return report, nil
}

// GetRunStatus récupère l'état d'une exécution depuis Redis
func (s *MigrationService) GetRunStatus(ctx context.Context, runID string) (*dto.MigrationRunStatus, error) {
	raw, err := s.redis.Get(ctx, utils.MigrationRunStatusKey(runID))
	if err != nil {
		return nil, err
	}

	var status dto.MigrationRunStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, fmt.Errorf("erreur désérialisation statut: %w", err)
	}

	return &status, nil
}

// GetLastRunID récupère l'identifiant de la dernière exécution déclenchée
func (s *MigrationService) GetLastRunID(ctx context.Context) (string, error) {
	return s.redis.Get(ctx, utils.MigrationLastRunKey())
}

// GetRunCounters récupère les compteurs détaillés d'une exécution
func (s *MigrationService) GetRunCounters(ctx context.Context, runID string) (map[string]string, error) {
	return s.redis.HGetAll(ctx, utils.MigrationRunCountersKey(runID))
}

func (s *MigrationService) setRunStatus(ctx context.Context, status *dto.MigrationRunStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("erreur sérialisation statut: %w", err)
	}

	if err := s.redis.Set(ctx, utils.MigrationRunStatusKey(status.RunID), payload, runStatusTTL); err != nil {
		return fmt.Errorf("erreur enregistrement statut: %w", err)
	}

	return nil
}

func (s *MigrationService) failRun(runID string, startedAt time.Time, runErr error) {
	fmt.Printf("[MIGRATION] ❌ Migration %s échouée: %v\n", runID, runErr)

	// Le contexte d'origine peut être annulé, on utilise un contexte dédié
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	finishedAt := time.Now()
	if err := s.setRunStatus(ctx, &dto.MigrationRunStatus{
		RunID:      runID,
		Status:     dto.RunStatusFailed,
		StartedAt:  startedAt,
		FinishedAt: &finishedAt,
		Error:      runErr.Error(),
	}); err != nil {
		fmt.Printf("[MIGRATION] ⚠️ Erreur enregistrement statut d'échec: %v\n", err)
	}
}
