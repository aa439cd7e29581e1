package deduplication

import (
	"go.uber.org/fx"

	"patient-migration-core/internal/modules/deduplication/services"
)

// Module regroupe les services du moteur de déduplication.
// IMPORTANT: Ce module ne contient PAS de controllers ni d'accès base de
// données - le moteur est pur et piloté par le module migration
var Module = fx.Options(
	fx.Provide(services.NewSimilarityService),
	fx.Provide(services.NewClusteringService),
	fx.Provide(services.NewMergeService),
	fx.Provide(services.NewDeduplicationService),
)
