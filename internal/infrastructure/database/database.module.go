package database

import (
	"go.uber.org/fx"
	"patient-migration-core/internal/infrastructure/database/mongodb"
	"patient-migration-core/internal/infrastructure/database/postgres"
	"patient-migration-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(

	// Modules database
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
