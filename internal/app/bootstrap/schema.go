package bootstrap

import (
	"context"
	"fmt"

	"patient-migration-core/internal/app/config"
	"patient-migration-core/internal/infrastructure/database/postgres"
)

// SchemaManager crée le schéma cible de la migration s'il n'existe pas.
// DDL idempotent (CREATE TABLE IF NOT EXISTS) : le bootstrap peut être
// rejoué à chaque démarrage sans effet de bord
type SchemaManager struct {
	pgClient *postgres.Client
	config   *config.Config
}

// NewSchemaManager crée une nouvelle instance du gestionnaire de schéma
func NewSchemaManager(pgClient *postgres.Client, cfg *config.Config) *SchemaManager {
	return &SchemaManager{
		pgClient: pgClient,
		config:   cfg,
	}
}

var schemaStatements = []struct {
	description string
	ddl         string
}{
	{
		description: "Table migrated_patients",
		ddl: `
			CREATE TABLE IF NOT EXISTS migrated_patients (
				id UUID PRIMARY KEY,
				practice_id UUID NOT NULL,
				patient_number VARCHAR(20) NOT NULL,
				first_name VARCHAR(255) NOT NULL DEFAULT '',
				last_name VARCHAR(255) NOT NULL DEFAULT '',
				email VARCHAR(255),
				date_of_birth DATE,
				gender VARCHAR(20),
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`,
	},
	{
		description: "Index practice_id sur migrated_patients",
		ddl: `
			CREATE INDEX IF NOT EXISTS idx_migrated_patients_practice
			ON migrated_patients (practice_id)
		`,
	},
	{
		description: "Index trigramme sur les noms migrés",
		ddl: `
			CREATE INDEX IF NOT EXISTS idx_migrated_patients_name_trgm
			ON migrated_patients
			USING gin ((first_name || ' ' || last_name) gin_trgm_ops)
		`,
	},
	{
		description: "Table migrated_patient_provenance",
		ddl: `
			CREATE TABLE IF NOT EXISTS migrated_patient_provenance (
				patient_id UUID NOT NULL REFERENCES migrated_patients(id) ON DELETE CASCADE,
				legacy_id BIGINT NOT NULL,
				primary_legacy_id BIGINT NOT NULL,
				merged_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (patient_id, legacy_id)
			)
		`,
	},
	{
		description: "Index unique legacy_id sur la provenance",
		ddl: `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_provenance_legacy_id
			ON migrated_patient_provenance (legacy_id)
		`,
	},
}

// EnsureTargetSchema applique toutes les instructions DDL du schéma cible
func (sm *SchemaManager) EnsureTargetSchema(ctx context.Context) error {
	fmt.Printf("[SCHEMA] Vérification du schéma cible (%d instructions)\n", len(schemaStatements))

	for _, stmt := range schemaStatements {
		if _, err := sm.pgClient.Pool().Exec(ctx, stmt.ddl); err != nil {
			return fmt.Errorf("failed to apply DDL (%s): %w", stmt.description, err)
		}
	}

	fmt.Printf("[SCHEMA] ✅ Schéma cible prêt\n")
	return nil
}

// VerifyTargetSchema contrôle la présence des tables attendues
func (sm *SchemaManager) VerifyTargetSchema(ctx context.Context) error {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_name IN ('migrated_patients', 'migrated_patient_provenance')
	`

	var count int
	if err := sm.pgClient.Pool().QueryRow(ctx, query).Scan(&count); err != nil {
		return fmt.Errorf("failed to verify target schema: %w", err)
	}

	if count != 2 {
		return fmt.Errorf("target schema incomplete: %d/2 tables present", count)
	}

	return nil
}
