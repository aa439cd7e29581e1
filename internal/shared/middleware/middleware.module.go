package middleware

import (
	"go.uber.org/fx"
	"patient-migration-core/internal/shared/middleware/core"
	"patient-migration-core/internal/shared/middleware/security"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	// Middlewares transverses (CORS, recovery)
	fx.Provide(security.CORSMiddleware),
	fx.Provide(core.RecoveryMiddleware),
)
