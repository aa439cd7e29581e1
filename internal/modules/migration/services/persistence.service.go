package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"patient-migration-core/internal/infrastructure/database/postgres"
	dedupdto "patient-migration-core/internal/modules/deduplication/dto"
	"patient-migration-core/internal/modules/migration/queries"
)

// PersistenceService écrit les dossiers canoniques dans le schéma cible.
// C'est ici que le placeholder de tenant émis par le moteur est remplacé
// par le véritable identifiant de practice
type PersistenceService struct {
	db        *postgres.Client
	txManager *postgres.TransactionManager
}

// NewPersistenceService crée une nouvelle instance du service
func NewPersistenceService(db *postgres.Client, txManager *postgres.TransactionManager) *PersistenceService {
	return &PersistenceService{
		db:        db,
		txManager: txManager,
	}
}

// PersistMergedRecords insère tous les dossiers canoniques et leur
// provenance en une transaction atomique : une migration partiellement
// écrite serait pire qu'une migration échouée
func (s *PersistenceService) PersistMergedRecords(
	ctx context.Context,
	practiceID uuid.UUID,
	patients []dedupdto.TargetPatient,
) (int, error) {
	if len(patients) == 0 {
		return 0, nil
	}

	persisted := 0

	err := s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		for i := range patients {
			patient := &patients[i]

			err := tx.Exec(ctx,
				queries.MigrationQueries.InsertMigratedPatient,
				patient.ID,
				practiceID,
				patient.PatientNumber,
				patient.FirstName,
				patient.LastName,
				patient.Email,
				patient.DateOfBirth,
				patient.Gender,
				patient.CreatedAt,
				patient.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert patient %s: %w", patient.PatientNumber, err)
			}

			for _, legacyID := range patient.Provenance.LegacyIDs {
				err := tx.Exec(ctx,
					queries.MigrationQueries.InsertProvenanceEntry,
					patient.ID,
					legacyID,
					patient.Provenance.PrimaryLegacyID,
					patient.Provenance.MergedAt,
				)
				if err != nil {
					return fmt.Errorf("failed to insert provenance for legacy id %d: %w", legacyID, err)
				}
			}

			persisted++
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	fmt.Printf("[MIGRATION] Persistance terminée - Dossiers: %d, Practice: %s\n", persisted, practiceID)
	return persisted, nil
}

// CountMigratedPatients retourne le nombre de dossiers migrés pour une practice
func (s *PersistenceService) CountMigratedPatients(ctx context.Context, practiceID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, queries.MigrationQueries.CountMigratedPatients, practiceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count migrated patients: %w", err)
	}
	return count, nil
}
