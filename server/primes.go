package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/prime"
	"github.com/kbukum/primekit/validation"
)

// PrimeService is the query surface served under /v1/primes.
// *service.Primes implements it.
type PrimeService interface {
	Between(ctx context.Context, min, max uint64) ([]uint64, error)
	Range(ctx context.Context, expr string) ([]uint64, error)
	First(ctx context.Context, count int) ([]uint64, error)
	Kind() prime.Kind
}

// primesQuery selects primes either by min/max or by a range expression.
type primesQuery struct {
	Min   *uint64 `form:"min" json:"min" validate:"excluded_with=Range"`
	Max   *uint64 `form:"max" json:"max" validate:"required_without=Range,excluded_with=Range"`
	Range string  `form:"range" json:"range" validate:"omitempty,max=128"`
}

type firstQuery struct {
	Count *int `form:"count" json:"count" validate:"required,gte=1"`
}

// RegisterPrimes mounts the prime query routes on r:
//
//	GET /v1/primes?min=10&max=100
//	GET /v1/primes?range=10..=100
//	GET /v1/primes/first?count=25
func RegisterPrimes(r gin.IRouter, svc PrimeService) {
	h := &primesHandler{svc: svc}
	v1 := r.Group("/v1")
	v1.GET("/primes", h.between)
	v1.GET("/primes/first", h.first)
}

// RegisterPrimes mounts the prime query routes on the server's engine.
func (s *Server) RegisterPrimes(svc PrimeService) {
	RegisterPrimes(s.engine, svc)
}

type primesHandler struct {
	svc PrimeService
}

func (h *primesHandler) between(c *gin.Context) {
	var q primesQuery
	if err := bindQuery(c, &q); err != nil {
		RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	meta := &Meta{Generator: string(h.svc.Kind())}

	var (
		out []uint64
		err error
	)
	if q.Range != "" {
		meta.Range = q.Range
		out, err = h.svc.Range(ctx, q.Range)
	} else {
		if q.Min != nil {
			meta.Min = *q.Min
		}
		meta.Max = *q.Max
		out, err = h.svc.Between(ctx, meta.Min, meta.Max)
	}
	if err != nil {
		RespondWithError(c, err)
		return
	}

	meta.Count = len(out)
	RespondOKWithMeta(c, out, meta)
}

func (h *primesHandler) first(c *gin.Context) {
	var q firstQuery
	if err := bindQuery(c, &q); err != nil {
		RespondWithError(c, err)
		return
	}

	out, err := h.svc.First(c.Request.Context(), *q.Count)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOKWithMeta(c, out, &Meta{Count: len(out), Generator: string(h.svc.Kind())})
}

// bindQuery decodes the query string into q and checks its validate tags.
// Values that do not parse, such as min=-1, are INVALID_INPUT.
func bindQuery(c *gin.Context, q any) error {
	if err := c.ShouldBindQuery(q); err != nil {
		return errors.Validation("Query parameters could not be parsed").WithCause(err)
	}
	return validation.Validate(q)
}
