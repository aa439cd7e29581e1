package app

import (
	"patient-migration-core/internal/app/bootstrap"
	"patient-migration-core/internal/app/config"
	"patient-migration-core/internal/infrastructure/database"
	"patient-migration-core/internal/infrastructure/logger"
	"patient-migration-core/internal/modules/deduplication"
	"patient-migration-core/internal/modules/migration"
	"patient-migration-core/internal/shared/middleware"

	"go.uber.org/fx"
)

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewLegacyPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(config.NewDedupConfig),

	// Infrastructure
	database.Module,
	logger.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Modules métier
	deduplication.Module,
	migration.Module,

	// Bootstrap System - Providers
	fx.Provide(bootstrap.NewBootstrapExtensionManager),
	fx.Provide(bootstrap.NewBootstrapSchemaManager),
	fx.Provide(bootstrap.NewBootstrapCollectionsManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
