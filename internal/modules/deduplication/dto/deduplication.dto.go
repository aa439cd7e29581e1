package dto

import (
	"time"

	"github.com/google/uuid"
)

// SourceRecord représente un dossier patient du schéma legacy (lecture seule).
// Les champs nullable reflètent des années de saisie manuelle inégale
type SourceRecord struct {
	LegacyID    int64      `json:"legacy_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SimilarityFactors représente les quatre sous-scores d'une comparaison de paire.
// Chaque score est dans [0.0, 1.0]
type SimilarityFactors struct {
	Name        float64 `json:"name"`
	Email       float64 `json:"email"`
	Phone       float64 `json:"phone"`
	DateOfBirth float64 `json:"date_of_birth"`
}

// SimilarityWeights pondère les facteurs dans le score de confiance combiné.
// Invariant : la somme des poids vaut 1.0
type SimilarityWeights struct {
	Name        float64 `json:"name"`
	Email       float64 `json:"email"`
	Phone       float64 `json:"phone"`
	DateOfBirth float64 `json:"date_of_birth"`
}

// MergeStrategy représente l'action retenue pour un cluster de doublons
type MergeStrategy string

const (
	MergeStrategyAutomatic    MergeStrategy = "automatic"     // Confiance >= seuil automatique
	MergeStrategyManualReview MergeStrategy = "manual_review" // Confiance >= seuil de revue
	MergeStrategySkip         MergeStrategy = "skip"          // Sous le seuil de revue
)

// DedupConfig regroupe seuils et poids du moteur. Injectée explicitement dans
// les services plutôt que des constantes de package, pour permettre des tests
// avec des seuils alternatifs
type DedupConfig struct {
	Weights            SimilarityWeights `json:"weights"`
	AutomaticThreshold float64           `json:"automatic_threshold"`
	ReviewThreshold    float64           `json:"review_threshold"`
}

// DefaultDedupConfig retourne la configuration de référence du moteur
func DefaultDedupConfig() DedupConfig {
	return DedupConfig{
		Weights: SimilarityWeights{
			Name:        0.4,
			Email:       0.3,
			Phone:       0.2,
			DateOfBirth: 0.1,
		},
		AutomaticThreshold: 0.95,
		ReviewThreshold:    0.75,
	}
}

// DeduplicationCandidate représente un cluster de doublons probables : un
// dossier primaire, ses doublons dans l'ordre de la collection d'origine, le
// score représentatif (maximum des paires primaire/doublon) et les facteurs
// de la paire gagnante
type DeduplicationCandidate struct {
	Primary    SourceRecord      `json:"primary"`
	Duplicates []SourceRecord    `json:"duplicates"`
	Confidence float64           `json:"confidence"`
	Factors    SimilarityFactors `json:"factors"`
	Strategy   MergeStrategy     `json:"strategy"`

	// Renseigné uniquement quand Strategy == automatic
	MergedData *TargetPatient `json:"merged_data,omitempty"`
}

// MergeProvenance trace les dossiers legacy fondus dans un dossier cible
type MergeProvenance struct {
	LegacyIDs       []int64   `json:"legacy_ids"`
	PrimaryLegacyID int64     `json:"primary_legacy_id"`
	MergedAt        time.Time `json:"merged_at"`
}

// TargetPatient représente le dossier canonique émis vers le nouveau schéma.
// PracticeID est un placeholder : le vrai identifiant de tenant est assigné
// par la couche de persistance
type TargetPatient struct {
	ID            uuid.UUID       `json:"id"`
	PracticeID    uuid.UUID       `json:"practice_id"`
	PatientNumber string          `json:"patient_number"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         *string         `json:"email,omitempty"`
	DateOfBirth   *time.Time      `json:"date_of_birth,omitempty"`
	Gender        *string         `json:"gender,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Provenance    MergeProvenance `json:"provenance"`
}

// DeduplicationResult représente l'agrégat final d'une passe de déduplication
type DeduplicationResult struct {
	TotalCandidates int                      `json:"total_candidates"`
	AutomaticCount  int                      `json:"automatic_count"`
	ManualCount     int                      `json:"manual_count"`
	SkipCount       int                      `json:"skip_count"`
	MergedRecords   []TargetPatient          `json:"merged_records"`
	ReviewQueue     []DeduplicationCandidate `json:"review_queue"`
}
