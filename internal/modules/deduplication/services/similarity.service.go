package services

import (
	"strings"

	"patient-migration-core/internal/modules/deduplication/dto"
	"patient-migration-core/internal/shared/utils"
)

// SimilarityService calcule les scores de similarité entre deux dossiers
// legacy. Quatre signaux faiblement fiables sont évalués indépendamment
// (nom, email, téléphone, date de naissance) puis combinés par somme pondérée
type SimilarityService struct {
	config dto.DedupConfig
}

// NewSimilarityService crée une nouvelle instance du service
func NewSimilarityService(config dto.DedupConfig) *SimilarityService {
	return &SimilarityService{config: config}
}

// Score compare deux dossiers et retourne les facteurs détaillés plus le
// score de confiance combiné. Tout champ manquant d'un côté ou de l'autre
// dégrade le facteur correspondant à 0, jamais d'erreur
func (s *SimilarityService) Score(a, b *dto.SourceRecord) (dto.SimilarityFactors, float64) {
	factors := dto.SimilarityFactors{
		Name:        s.nameScore(a, b),
		Email:       s.emailScore(a.Email, b.Email),
		Phone:       s.phoneScore(a.Phone, b.Phone),
		DateOfBirth: s.dateOfBirthScore(a, b),
	}

	w := s.config.Weights
	confidence := factors.Name*w.Name +
		factors.Email*w.Email +
		factors.Phone*w.Phone +
		factors.DateOfBirth*w.DateOfBirth

	return factors, confidence
}

// nameScore évalue la similarité des noms complets normalisés, avec bonus
// quand prénom ou nom de famille coïncident exactement
func (s *SimilarityService) nameScore(a, b *dto.SourceRecord) float64 {
	nameA := utils.NormalizeName(a.FirstName, a.LastName)
	nameB := utils.NormalizeName(b.FirstName, b.LastName)

	if nameA == "" || nameB == "" {
		return 0
	}
	if nameA == nameB {
		return 1.0
	}

	maxLen := len(nameA)
	if len(nameB) > maxLen {
		maxLen = len(nameB)
	}
	score := 1.0 - float64(utils.LevenshteinDistance(nameA, nameB))/float64(maxLen)

	// Bonus sur les composantes brutes normalisées, pas sur le nom assemblé
	if utils.NormalizeToken(a.FirstName) == utils.NormalizeToken(b.FirstName) {
		score += 0.2
	}
	if utils.NormalizeToken(a.LastName) == utils.NormalizeToken(b.LastName) {
		score += 0.3
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// emailScore compare les emails normalisés avec NormalizeToken. La
// normalisation supprime '@' et '.' comme tout autre séparateur : la
// frontière local-part/domaine disparaît avant la distance d'édition.
// Comportement hérité du système d'origine, conservé tel quel
func (s *SimilarityService) emailScore(a, b *string) float64 {
	emailA := utils.NormalizeToken(deref(a))
	emailB := utils.NormalizeToken(deref(b))

	if emailA == "" || emailB == "" {
		return 0
	}
	if emailA == emailB {
		return 1.0
	}

	maxLen := len(emailA)
	if len(emailB) > maxLen {
		maxLen = len(emailB)
	}
	similarity := 1.0 - float64(utils.LevenshteinDistance(emailA, emailB))/float64(maxLen)

	// Sous 0.8 la ressemblance d'emails distincts n'est pas significative
	if similarity > 0.8 {
		return similarity
	}
	return 0
}

// phoneScore compare les numéros réduits à leurs chiffres. L'inclusion d'un
// numéro dans l'autre couvre les différences d'indicatif et de formatage
func (s *SimilarityService) phoneScore(a, b *string) float64 {
	phoneA := utils.NormalizePhone(deref(a))
	phoneB := utils.NormalizePhone(deref(b))

	if phoneA == "" || phoneB == "" {
		return 0
	}
	if phoneA == phoneB {
		return 1.0
	}
	if strings.Contains(phoneA, phoneB) || strings.Contains(phoneB, phoneA) {
		return 0.8
	}
	return 0
}

// dateOfBirthScore compare les dates de naissance en tolérant les erreurs de
// saisie courantes : inversion jour/mois et décalage d'exactement un an
func (s *SimilarityService) dateOfBirthScore(a, b *dto.SourceRecord) float64 {
	if a.DateOfBirth == nil || b.DateOfBirth == nil {
		return 0
	}

	da := *a.DateOfBirth
	db := *b.DateOfBirth

	yearA, monthA, dayA := da.Date()
	yearB, monthB, dayB := db.Date()

	if yearA == yearB && monthA == monthB && dayA == dayB {
		return 1.0
	}

	// Inversion jour/mois (03/07 saisi 07/03)
	if yearA == yearB && dayA == int(monthB) && int(monthA) == dayB {
		return 0.8
	}

	// Même jour et mois à un an près
	if monthA == monthB && dayA == dayB && (yearA == yearB+1 || yearA == yearB-1) {
		return 0.7
	}

	return 0
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
