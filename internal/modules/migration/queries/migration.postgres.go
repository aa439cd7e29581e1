package queries

// MigrationQueries contient toutes les requêtes SQL de la migration patients
var MigrationQueries = struct {
	SelectLegacyPatients   string
	CountLegacyPatients    string
	InsertMigratedPatient  string
	InsertProvenanceEntry  string
	CountMigratedPatients  string
}{
	// SelectLegacyPatients - Extraction complète du schéma legacy.
	// L'ordre par identifiant est significatif : le clustering glouton du
	// moteur dépend de l'ordre de la collection
	SelectLegacyPatients: `
		SELECT
			p.id,
			p.first_name,
			p.last_name,
			p.email,
			p.phone,
			p.date_of_birth,
			p.gender,
			p.created_at,
			p.updated_at
		FROM patients p
		ORDER BY p.id ASC
	`,

	// CountLegacyPatients - Volumétrie avant extraction
	CountLegacyPatients: `
		SELECT COUNT(*) FROM patients
	`,

	// InsertMigratedPatient - Insertion d'un dossier canonique dans le
	// nouveau schéma
	InsertMigratedPatient: `
		INSERT INTO migrated_patients (
			id,
			practice_id,
			patient_number,
			first_name,
			last_name,
			email,
			date_of_birth,
			gender,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,

	// InsertProvenanceEntry - Une ligne par dossier legacy fondu
	InsertProvenanceEntry: `
		INSERT INTO migrated_patient_provenance (
			patient_id,
			legacy_id,
			primary_legacy_id,
			merged_at
		) VALUES ($1, $2, $3, $4)
	`,

	// CountMigratedPatients - Contrôle post-migration
	CountMigratedPatients: `
		SELECT COUNT(*) FROM migrated_patients WHERE practice_id = $1
	`,
}
