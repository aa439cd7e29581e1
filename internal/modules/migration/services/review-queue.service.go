package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"patient-migration-core/internal/infrastructure/database/mongodb"
	dedupdto "patient-migration-core/internal/modules/deduplication/dto"
	"patient-migration-core/internal/modules/migration/dto"
)

// Collections MongoDB du module migration
const (
	ReviewQueueCollection = "migration_review_queue"
	ReportsCollection     = "migration_reports"
)

// ReviewQueueService route les candidats en revue manuelle vers MongoDB,
// où le workflow de revue humaine les consomme
type ReviewQueueService struct {
	mongo *mongodb.Client
}

// NewReviewQueueService crée une nouvelle instance du service
func NewReviewQueueService(mongo *mongodb.Client) *ReviewQueueService {
	return &ReviewQueueService{mongo: mongo}
}

// EnqueueCandidates archive les candidats de la file de revue avec le
// détail complet du cluster, pour jugement par un opérateur
func (s *ReviewQueueService) EnqueueCandidates(
	ctx context.Context,
	runID string,
	candidates []dedupdto.DeduplicationCandidate,
) error {
	if len(candidates) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(candidates))
	for i := range candidates {
		docs = append(docs, dto.ReviewQueueItem{
			RunID:     runID,
			Status:    "pending",
			Candidate: candidates[i],
			CreatedAt: now,
		})
	}

	collection := s.mongo.Collection(ReviewQueueCollection)
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to enqueue review candidates: %w", err)
	}

	fmt.Printf("[MIGRATION] File de revue alimentée - Candidats: %d, Run: %s\n", len(candidates), runID)
	return nil
}

// ListPending retourne les candidats en attente de revue, plus récents en premier
func (s *ReviewQueueService) ListPending(ctx context.Context, limit int64) ([]dto.ReviewQueueItem, error) {
	collection := s.mongo.Collection(ReviewQueueCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{"status": "pending"}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending review items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []dto.ReviewQueueItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode review items: %w", err)
	}

	return items, nil
}

// SaveReport archive le rapport d'exécution pour audit
func (s *ReviewQueueService) SaveReport(ctx context.Context, report *dto.MigrationReport) error {
	collection := s.mongo.Collection(ReportsCollection)
	if _, err := collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to save migration report: %w", err)
	}
	return nil
}

// GetReport récupère le rapport d'une exécution
func (s *ReviewQueueService) GetReport(ctx context.Context, runID string) (*dto.MigrationReport, error) {
	collection := s.mongo.Collection(ReportsCollection)

	var report dto.MigrationReport
	err := collection.FindOne(ctx, bson.M{"run_id": runID}).Decode(&report)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration report %s: %w", runID, err)
	}

	return &report, nil
}
