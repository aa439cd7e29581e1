package services

import (
	"context"
	"fmt"
	"time"

	"patient-migration-core/internal/infrastructure/database/postgres"
	dedupdto "patient-migration-core/internal/modules/deduplication/dto"
	"patient-migration-core/internal/modules/migration/queries"
)

// ExtractionService matérialise les dossiers patients du schéma legacy.
// Lecture seule : le moteur de déduplication ne modifie jamais la source
type ExtractionService struct {
	legacy *postgres.LegacyClient
}

// NewExtractionService crée une nouvelle instance du service
func NewExtractionService(legacy *postgres.LegacyClient) *ExtractionService {
	return &ExtractionService{legacy: legacy}
}

// ExtractPatients charge l'intégralité des dossiers legacy, dans l'ordre
// des identifiants. Les timestamps absents restent à zéro : le moteur les
// traite comme "maintenant" au moment de la fusion
func (s *ExtractionService) ExtractPatients(ctx context.Context) ([]dedupdto.SourceRecord, error) {
	rows, err := s.legacy.Query(ctx, queries.MigrationQueries.SelectLegacyPatients)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy patients: %w", err)
	}
	defer rows.Close()

	var records []dedupdto.SourceRecord

	for rows.Next() {
		var record dedupdto.SourceRecord
		var firstName, lastName *string
		var createdAt, updatedAt *time.Time

		err := rows.Scan(
			&record.LegacyID,
			&firstName,
			&lastName,
			&record.Email,
			&record.Phone,
			&record.DateOfBirth,
			&record.Gender,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legacy patient: %w", err)
		}

		// Noms NULL ramenés à la chaîne vide (facteur nom = 0 au scoring)
		if firstName != nil {
			record.FirstName = *firstName
		}
		if lastName != nil {
			record.LastName = *lastName
		}
		if createdAt != nil {
			record.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			record.UpdatedAt = *updatedAt
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate legacy patients: %w", err)
	}

	fmt.Printf("[MIGRATION] Extraction legacy terminée - Dossiers: %d\n", len(records))
	return records, nil
}

// CountPatients retourne la volumétrie de la base legacy
func (s *ExtractionService) CountPatients(ctx context.Context) (int, error) {
	var count int
	err := s.legacy.QueryRow(ctx, queries.MigrationQueries.CountLegacyPatients).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count legacy patients: %w", err)
	}
	return count, nil
}
