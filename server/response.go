package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/logger"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta describes a list of primes.
type Meta struct {
	Count     int    `json:"count"`
	Generator string `json:"generator,omitempty"`
	Min       uint64 `json:"min,omitempty"`
	Max       uint64 `json:"max,omitempty"`
	Range     string `json:"range,omitempty"`
}

// RespondWithError renders err. An *errors.AppError anywhere in the chain
// supplies the status and body; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.Wrap(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse(logger.RequestIDFromContext(c.Request.Context())))
}

// RespondOKWithMeta sends a 200 response with data and metadata.
func RespondOKWithMeta(c *gin.Context, data any, meta *Meta) {
	c.JSON(http.StatusOK, DataResponse{Data: data, Meta: meta})
}
