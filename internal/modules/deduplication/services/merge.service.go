package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"patient-migration-core/internal/modules/deduplication/dto"
	"patient-migration-core/internal/shared/utils"
)

// MergeService classe chaque cluster par confiance (fusion automatique,
// revue manuelle, skip) et effectue la fusion déterministe des clusters
// automatiques en un dossier cible unique
type MergeService struct {
	config dto.DedupConfig
}

// NewMergeService crée une nouvelle instance du service
func NewMergeService(config dto.DedupConfig) *MergeService {
	return &MergeService{config: config}
}

// Classify détermine la stratégie de fusion en fonction du score représentatif.
// Le résultat skip est conservé pour les appels directs, mais un candidat issu
// du clustering dépasse par construction le seuil de revue : la branche skip
// y est structurellement inatteignable
func (s *MergeService) Classify(confidence float64) dto.MergeStrategy {
	if confidence >= s.config.AutomaticThreshold {
		return dto.MergeStrategyAutomatic
	}
	if confidence >= s.config.ReviewThreshold {
		return dto.MergeStrategyManualReview
	}
	return dto.MergeStrategySkip
}

// Resolve assigne la stratégie d'un candidat et, pour les fusions
// automatiques, renseigne le dossier cible fusionné
func (s *MergeService) Resolve(candidate *dto.DeduplicationCandidate) {
	candidate.Strategy = s.Classify(candidate.Confidence)
	if candidate.Strategy == dto.MergeStrategyAutomatic {
		merged := s.FuseCluster(candidate.Primary, candidate.Duplicates)
		candidate.MergedData = &merged
	}
}

// FuseCluster fond les membres d'un cluster (primaire puis doublons, dans
// l'ordre de la liste) en un dossier cible canonique :
//   - prénom / nom : recopiés du primaire uniquement
//   - email : celui du membre au updated_at le plus récent (un membre sans
//     timestamp est daté "maintenant" et peut donc gagner, comportement
//     hérité conservé)
//   - date de naissance / genre : première valeur non nulle dans l'ordre
//   - created_at : le plus ancien des membres
//   - provenance : tous les identifiants legacy fondus, horodatage de
//     fusion, identifiant du primaire
func (s *MergeService) FuseCluster(primary dto.SourceRecord, duplicates []dto.SourceRecord) dto.TargetPatient {
	now := time.Now()

	members := make([]dto.SourceRecord, 0, len(duplicates)+1)
	members = append(members, primary)
	members = append(members, duplicates...)

	legacyIDs := make([]int64, 0, len(members))
	for _, m := range members {
		legacyIDs = append(legacyIDs, m.LegacyID)
	}

	return dto.TargetPatient{
		ID:            uuid.New(),
		PatientNumber: PatientNumber(&primary),
		FirstName:     primary.FirstName,
		LastName:      primary.LastName,
		Email:         mostRecentEmail(members, now),
		DateOfBirth:   firstDateOfBirth(members),
		Gender:        firstGender(members),
		CreatedAt:     earliestCreatedAt(members, now),
		UpdatedAt:     now,
		Provenance: dto.MergeProvenance{
			LegacyIDs:       legacyIDs,
			PrimaryLegacyID: primary.LegacyID,
			MergedAt:        now,
		},
	}
}

// ConvertRecord convertit 1:1 un dossier jamais clusterisé (passthrough) :
// mêmes champs, identifiant fraîchement généré, provenance réduite à son
// propre identifiant legacy
func (s *MergeService) ConvertRecord(record dto.SourceRecord) dto.TargetPatient {
	return s.FuseCluster(record, nil)
}

// PatientNumber dérive déterministiquement le numéro patient du dossier
// primaire : préfixe de 3 lettres du nom de famille + identifiant legacy
func PatientNumber(primary *dto.SourceRecord) string {
	prefix := strings.ToUpper(utils.NormalizeToken(primary.LastName))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for len(prefix) < 3 {
		prefix += "X"
	}
	return fmt.Sprintf("%s-%06d", prefix, primary.LegacyID)
}

// mostRecentEmail retourne l'email du membre au updated_at le plus récent
// parmi ceux qui en ont un. Un updated_at absent vaut "maintenant"
func mostRecentEmail(members []dto.SourceRecord, now time.Time) *string {
	var best *string
	var bestAt time.Time

	for i := range members {
		m := &members[i]
		if m.Email == nil {
			continue
		}

		updatedAt := m.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}

		if best == nil || updatedAt.After(bestAt) {
			best = m.Email
			bestAt = updatedAt
		}
	}

	return best
}

func firstDateOfBirth(members []dto.SourceRecord) *time.Time {
	for i := range members {
		if members[i].DateOfBirth != nil {
			return members[i].DateOfBirth
		}
	}
	return nil
}

func firstGender(members []dto.SourceRecord) *string {
	for i := range members {
		if members[i].Gender != nil {
			return members[i].Gender
		}
	}
	return nil
}

func earliestCreatedAt(members []dto.SourceRecord, now time.Time) time.Time {
	earliest := now
	for i := range members {
		createdAt := members[i].CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if createdAt.Before(earliest) {
			earliest = createdAt
		}
	}
	return earliest
}
