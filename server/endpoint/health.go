package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/primekit/observability"
)

// Health returns a handler that aggregates the given checkers. The response
// is 503 only when a component is down; a degraded service still answers 200.
func Health(serviceName, version string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, version).Check(c.Request.Context(), checkers...)
		c.JSON(sh.HTTPStatus(), gin.H{
			"service":    sh.Service,
			"version":    sh.Version,
			"status":     sh.Status,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}
