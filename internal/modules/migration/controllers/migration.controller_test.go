package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-migration-core/internal/modules/migration/services"
)

func TestResolvePracticeID_RequetePrioritaire(t *testing.T) {
	requested := uuid.New().String()
	fallback := uuid.New().String()

	practiceID, err := resolvePracticeID(requested, fallback)
	require.NoError(t, err)
	assert.Equal(t, requested, practiceID.String())
}

func TestResolvePracticeID_RepliSurCabinetParDefaut(t *testing.T) {
	fallback := uuid.New().String()

	practiceID, err := resolvePracticeID("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, practiceID.String())
}

func TestResolvePracticeID_AucunCabinetDisponible(t *testing.T) {
	_, err := resolvePracticeID("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aucun cabinet par défaut")
}

func TestResolvePracticeID_UUIDInvalide(t *testing.T) {
	_, err := resolvePracticeID("pas-un-uuid", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UUID attendu")
}

func TestStatusForRunError_ConflitReserveAuxExecutionsEnCours(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusForRunError(services.ErrMigrationInProgress))
	assert.Equal(t, http.StatusConflict,
		statusForRunError(fmt.Errorf("%w sur une autre instance", services.ErrMigrationInProgress)))
	assert.Equal(t, http.StatusInternalServerError,
		statusForRunError(fmt.Errorf("erreur extraction patients legacy: connexion refusée")))
}
