package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/primekit/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info returns a handler that reports build information and uptime.
// extra is merged into the body, for example the active generator kind.
func Info(serviceName string, extra map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		body := gin.H{
			"service":    serviceName,
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"is_release": v.IsRelease,
			"is_dirty":   v.IsDirty,
			"uptime":     time.Since(startTime).Round(time.Second).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		}
		for k, val := range extra {
			body[k] = val
		}
		c.JSON(http.StatusOK, body)
	}
}
