package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigration_RefuseExecutionConcurrente(t *testing.T) {
	service := &MigrationService{}
	service.inProgress = true

	response, err := service.RunMigration(context.Background(), uuid.New(), false)

	require.ErrorIs(t, err, ErrMigrationInProgress)
	assert.Nil(t, response)
}
