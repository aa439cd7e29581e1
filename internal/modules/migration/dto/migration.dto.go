package dto

import (
	"time"

	dedupdto "patient-migration-core/internal/modules/deduplication/dto"
)

// RunMigrationRequest représente une demande d'exécution de migration
type RunMigrationRequest struct {
	AdminPassword string `json:"admin_password" binding:"required"`

	// Optionnel : MIGRATION_DEFAULT_PRACTICE_ID est utilisé si absent
	PracticeID string `json:"practice_id"`

	// DryRun exécute la déduplication sans écrire dans le schéma cible
	DryRun bool `json:"dry_run"`
}

// Statuts d'une exécution de migration
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// MigrationRunStatus représente l'état d'une exécution, caché dans Redis
type MigrationRunStatus struct {
	RunID      string     `json:"run_id"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// MigrationReport représente le rapport complet d'une exécution, archivé
// dans MongoDB pour audit
type MigrationReport struct {
	RunID              string    `bson:"run_id" json:"run_id"`
	PracticeID         string    `bson:"practice_id" json:"practice_id"`
	DryRun             bool      `bson:"dry_run" json:"dry_run"`
	SourceCount        int       `bson:"source_count" json:"source_count"`
	TotalCandidates    int       `bson:"total_candidates" json:"total_candidates"`
	AutomaticCount     int       `bson:"automatic_count" json:"automatic_count"`
	ManualCount        int       `bson:"manual_count" json:"manual_count"`
	SkipCount          int       `bson:"skip_count" json:"skip_count"`
	MergedCount        int       `bson:"merged_count" json:"merged_count"`
	PersistedCount     int       `bson:"persisted_count" json:"persisted_count"`
	ReviewQueueCount   int       `bson:"review_queue_count" json:"review_queue_count"`
	ProvenanceChecksum string    `bson:"provenance_checksum" json:"provenance_checksum"`
	StartedAt          time.Time `bson:"started_at" json:"started_at"`
	FinishedAt         time.Time `bson:"finished_at" json:"finished_at"`
	DurationMs         int64     `bson:"duration_ms" json:"duration_ms"`
}

// ReviewQueueItem représente un candidat en attente de revue humaine,
// stocké dans la collection MongoDB migration_review_queue
type ReviewQueueItem struct {
	RunID     string                          `bson:"run_id" json:"run_id"`
	Status    string                          `bson:"status" json:"status"` // "pending", "resolved"
	Candidate dedupdto.DeduplicationCandidate `bson:"candidate" json:"candidate"`
	CreatedAt time.Time                       `bson:"created_at" json:"created_at"`
}

// RunMigrationResponse représente la réponse à un déclenchement de migration
type RunMigrationResponse struct {
	RunID  string           `json:"run_id"`
	Report *MigrationReport `json:"report"`
}
