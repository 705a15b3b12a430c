// Package gateway wires the HTTP surface: it dispatches verified requests to
// the mint service and renders domain results and failures as JSON responses.
package gateway

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mintgate/mintgate"
	"github.com/mintgate/mintgate/encoding"
	"github.com/mintgate/mintgate/mint"
)

// Router builds the gin engine for the gateway.
type Router struct {
	svc *mint.Service
	log *slog.Logger

	// gates holds the payment-gate middleware per "METHOD /path" key; nil
	// entries mean the route runs ungated (used by tests).
	gates map[string]gin.HandlerFunc
}

// GateKey builds the gates map key for a route.
func GateKey(method, path string) string {
	return method + " " + path
}

// New creates a Router. gates maps GateKey(method, path) of each priced
// route to its payment-gate middleware.
func New(svc *mint.Service, gates map[string]gin.HandlerFunc, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{svc: svc, gates: gates, log: log}
}

// Engine assembles the gin engine with all gateway routes.
func (rt *Router) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), rt.requestLogger())

	rt.handle(r, http.MethodGet, "/api/mint", rt.handleMint)
	rt.handle(r, http.MethodGet, "/api/mint-10", rt.fixedMintHandler(10))
	rt.handle(r, http.MethodGet, "/api/mint-20", rt.fixedMintHandler(20))
	rt.handle(r, http.MethodGet, "/minted", rt.handleMinted)

	return r
}

func (rt *Router) handle(r *gin.Engine, method, path string, handler gin.HandlerFunc) {
	if gate, ok := rt.gates[GateKey(method, path)]; ok && gate != nil {
		r.Handle(method, path, gate, handler)
		return
	}
	r.Handle(method, path, handler)
}

// requestLogger tags every request with an ID and logs its outcome.
func (rt *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		rt.log.Info("request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// handleMint serves GET /api/mint?quantity=N. A missing or non-numeric
// quantity defaults to 1; the bounds check happens in the mint service. A
// numeric value too large for int is already out of [1,20] and must fail the
// bounds check, not fall back to the default.
func (rt *Router) handleMint(c *gin.Context) {
	payer := encoding.PayerFromHeader(c.GetHeader("X-Payment"))

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		switch {
		case err == nil:
			quantity = parsed
		case errors.Is(err, strconv.ErrRange):
			rt.renderError(c, fmt.Errorf("%w: quantity %q overflows", mintgate.ErrInvalidQuantity, raw))
			return
		}
	}

	result, err := rt.svc.Mint(c.Request.Context(), payer, quantity)
	if err != nil {
		rt.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// fixedMintHandler serves the fixed-quantity mint routes. The quantity is
// hardcoded at the call site, so the bounds check is skipped.
func (rt *Router) fixedMintHandler(quantity int) gin.HandlerFunc {
	return func(c *gin.Context) {
		payer := encoding.PayerFromHeader(c.GetHeader("X-Payment"))

		result, err := rt.svc.MintFixed(c.Request.Context(), payer, quantity)
		if err != nil {
			rt.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// handleMinted serves GET /minted.
func (rt *Router) handleMinted(c *gin.Context) {
	payer := encoding.PayerFromHeader(c.GetHeader("X-Payment"))

	snapshot, err := rt.svc.TotalMinted(c.Request.Context(), payer)
	if err != nil {
		rt.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// renderError maps domain failures to status codes. Every per-request
// failure terminates here; none escapes the router.
func (rt *Router) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mintgate.ErrPaymentRequired):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment required"})
	case errors.Is(err, mintgate.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
	default:
		rt.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
