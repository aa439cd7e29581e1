package services

import (
	"patient-migration-core/internal/modules/deduplication/dto"
)

// ClusteringService regroupe les dossiers en clusters de doublons probables.
// Passe avant unique et gloutonne : l'ordre de la collection d'entrée est
// significatif, et chaque dossier appartient à au plus un cluster
type ClusteringService struct {
	similarity *SimilarityService
	config     dto.DedupConfig
}

// NewClusteringService crée une nouvelle instance du service
func NewClusteringService(similarity *SimilarityService, config dto.DedupConfig) *ClusteringService {
	return &ClusteringService{
		similarity: similarity,
		config:     config,
	}
}

// FindCandidates effectue la passe de clustering. Pour chaque index i non
// encore consommé, tout index ultérieur j non consommé dont la confiance
// versus i atteint le seuil de revue rejoint le cluster de i et est marqué
// consommé. Le dossier i n'est consommé que si son cluster est non vide.
//
// Le clustering est volontairement non transitif : un membre rattaché à i
// n'est jamais re-comparé à un dossier ultérieur, même si ce dernier lui
// ressemblerait davantage. Les dossiers sans correspondance restent non
// consommés et seront passés tels quels en sortie par l'agrégateur
func (s *ClusteringService) FindCandidates(records []dto.SourceRecord) []dto.DeduplicationCandidate {
	// Marqueurs de consommation locaux à la passe, aucun état partagé
	processed := make([]bool, len(records))

	var candidates []dto.DeduplicationCandidate

	for i := range records {
		if processed[i] {
			continue
		}

		var duplicates []dto.SourceRecord
		var bestConfidence float64
		var bestFactors dto.SimilarityFactors

		for j := i + 1; j < len(records); j++ {
			if processed[j] {
				continue
			}

			factors, confidence := s.similarity.Score(&records[i], &records[j])
			if confidence < s.config.ReviewThreshold {
				continue
			}

			duplicates = append(duplicates, records[j])
			processed[j] = true

			// Score représentatif du cluster : maximum des paires
			// primaire/doublon, avec les facteurs de la paire gagnante
			if confidence > bestConfidence {
				bestConfidence = confidence
				bestFactors = factors
			}
		}

		if len(duplicates) == 0 {
			continue
		}

		processed[i] = true
		candidates = append(candidates, dto.DeduplicationCandidate{
			Primary:    records[i],
			Duplicates: duplicates,
			Confidence: bestConfidence,
			Factors:    bestFactors,
		})
	}

	return candidates
}
