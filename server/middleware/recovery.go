package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/logger"
)

// Recovery turns a panic in a handler into a 500 response and logs the stack.
// A panic carrying an *errors.AppError, such as the one raised by an
// exhausted prime iterator, is rendered with that error's own code.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			appErr, ok := rec.(*errors.AppError)
			if !ok {
				appErr = errors.Internal(fmt.Errorf("panic: %v", rec))
			}
			log.WithContext(c.Request.Context()).Error("Panic recovered", map[string]interface{}{
				logger.FieldError: fmt.Sprintf("%v", rec),
				"stack":           string(debug.Stack()),
				"path":            c.Request.URL.Path,
				"method":          c.Request.Method,
				"client_ip":       c.ClientIP(),
			})
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse(logger.RequestIDFromContext(c.Request.Context())))
		}()
		c.Next()
	}
}
