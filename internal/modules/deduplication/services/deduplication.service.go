package services

import (
	"fmt"
	"time"

	"patient-migration-core/internal/modules/deduplication/dto"
)

// DeduplicationService orchestre la passe complète de déduplication :
// clustering, choix de stratégie par cluster, puis agrégation du résultat
// final. Le moteur est synchrone, sans I/O, et opère entièrement sur la
// collection fournie par l'appelant
type DeduplicationService struct {
	clusterer *ClusteringService
	merger    *MergeService
}

// NewDeduplicationService crée une nouvelle instance du service
func NewDeduplicationService(clusterer *ClusteringService, merger *MergeService) *DeduplicationService {
	return &DeduplicationService{
		clusterer: clusterer,
		merger:    merger,
	}
}

// Deduplicate exécute la passe sur la collection de dossiers legacy.
// Invariant de partition : chaque identifiant d'entrée apparaît exactement
// une fois en sortie, soit dans un unique candidat (primaire ou doublon),
// soit comme passthrough non clusterisé
func (s *DeduplicationService) Deduplicate(records []dto.SourceRecord) *dto.DeduplicationResult {
	startTime := time.Now()

	candidates := s.clusterer.FindCandidates(records)

	result := &dto.DeduplicationResult{
		TotalCandidates: len(candidates),
	}

	// Identifiants référencés par un candidat (primaire ou doublon)
	clustered := make(map[int64]bool)

	for i := range candidates {
		s.merger.Resolve(&candidates[i])
		candidate := &candidates[i]

		clustered[candidate.Primary.LegacyID] = true
		for _, duplicate := range candidate.Duplicates {
			clustered[duplicate.LegacyID] = true
		}

		switch candidate.Strategy {
		case dto.MergeStrategyAutomatic:
			result.AutomaticCount++
			result.MergedRecords = append(result.MergedRecords, *candidate.MergedData)
		case dto.MergeStrategyManualReview:
			result.ManualCount++
			result.ReviewQueue = append(result.ReviewQueue, *candidate)
		default:
			// Inatteignable depuis le clustering (seuil d'entrée = seuil de
			// revue), compté quand même pour les appels directs
			result.SkipCount++
		}
	}

	// Passthrough : tout dossier jamais référencé par un candidat est
	// converti 1:1 sans fusion
	for i := range records {
		if !clustered[records[i].LegacyID] {
			result.MergedRecords = append(result.MergedRecords, s.merger.ConvertRecord(records[i]))
		}
	}

	fmt.Printf("[DEDUP] Passe terminée - Dossiers: %d, Clusters: %d, Auto: %d, Revue: %d, Durée: %dms\n",
		len(records), result.TotalCandidates, result.AutomaticCount, result.ManualCount,
		time.Since(startTime).Milliseconds())

	return result
}
