package utils

import "fmt"

// RedisKeyHelpers contient les helpers pour générer les clés Redis selon les conventions
// Pattern: patient_migration_{domain}_{context}:{identifier}

// MigrationRunStatusKey génère la clé du statut d'une exécution de migration
func MigrationRunStatusKey(runID string) string {
	return fmt.Sprintf("patient_migration_run_status:%s", runID)
}

// MigrationRunCountersKey génère la clé HASH des compteurs d'une exécution
func MigrationRunCountersKey(runID string) string {
	return fmt.Sprintf("patient_migration_run_counters:%s", runID)
}

// MigrationLastRunKey génère la clé pointant vers la dernière exécution
func MigrationLastRunKey() string {
	return "patient_migration_run_last"
}

// MigrationLockKey génère la clé de verrou d'exécution (une migration à la fois)
func MigrationLockKey() string {
	return "patient_migration_run_lock"
}
