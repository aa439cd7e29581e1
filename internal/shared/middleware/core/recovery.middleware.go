package core

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// RecoveryHandler type spécifique pour Fx
type RecoveryHandler gin.HandlerFunc

// RecoveryMiddleware capture les panics du pipeline HTTP et répond dans le
// même format d'erreur que les controllers de migration
func RecoveryMiddleware() RecoveryHandler {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)

				slog.Error("panic intercepté",
					"error", err,
					"stack", string(stack[:n]),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"client_ip", c.ClientIP(),
					"request_id", c.GetString("request_id"),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "Erreur interne du service de migration",
					"request_id": c.GetString("request_id"),
				})
			}
		}()
		c.Next()
	}
}
