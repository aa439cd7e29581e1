package bootstrap

import (
	"context"
	"fmt"

	"patient-migration-core/internal/app/config"
	"patient-migration-core/internal/infrastructure/database/mongodb"
	migrationservices "patient-migration-core/internal/modules/migration/services"
)

// CollectionsManager prépare les collections MongoDB d'audit : file de
// revue humaine et rapports d'exécution
type CollectionsManager struct {
	collections *mongodb.CollectionManager
	config      *config.Config
}

// NewCollectionsManager crée une nouvelle instance du gestionnaire de collections
func NewCollectionsManager(collections *mongodb.CollectionManager, cfg *config.Config) *CollectionsManager {
	return &CollectionsManager{
		collections: collections,
		config:      cfg,
	}
}

// EnsureAuditCollections crée les collections et leurs index si nécessaire
func (cm *CollectionsManager) EnsureAuditCollections(ctx context.Context) error {
	fmt.Printf("[COLLECTIONS] Préparation des collections MongoDB d'audit\n")

	if err := cm.collections.EnsureReviewQueueCollection(ctx, migrationservices.ReviewQueueCollection); err != nil {
		return fmt.Errorf("failed to ensure review queue collection: %w", err)
	}

	if err := cm.collections.EnsureReportsCollection(ctx, migrationservices.ReportsCollection); err != nil {
		return fmt.Errorf("failed to ensure reports collection: %w", err)
	}

	fmt.Printf("[COLLECTIONS] ✅ Collections d'audit prêtes\n")
	return nil
}
