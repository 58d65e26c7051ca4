// Package server exposes the engine's operations over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/amm"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/engine"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/ledger"
)

// Server wires the engine and ledger into HTTP handlers.
type Server struct {
	engine *engine.Engine
	ledger *ledger.Ledger
	tokens *ledger.TokenRegistry
	logger *zap.Logger
}

func New(eng *engine.Engine, led *ledger.Ledger, tokens *ledger.TokenRegistry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: eng, ledger: led, tokens: tokens, logger: logger}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	v1 := r.Group("/v1")
	v1.POST("/pools", s.handleCreatePool)
	v1.GET("/pools/:assetA/:assetB", s.handleGetPool)
	v1.POST("/pools/liquidity", s.handleAddLiquidity)
	v1.POST("/pools/liquidity/remove", s.handleRemoveLiquidity)
	v1.POST("/swap", s.handleSwap)
	v1.GET("/quote", s.handleQuote)
	v1.GET("/price", s.handlePrice)
	v1.GET("/position", s.handlePosition)

	v1.POST("/tokens", s.handleRegisterToken)
	v1.POST("/tokens/mint", s.handleMint)
	v1.GET("/balance", s.handleBalance)

	return r
}

// fail maps the engine error taxonomy onto HTTP statuses. A transfer that
// failed because the caller's balance cannot cover it is the caller's fault
// and maps to 422; any other transfer failure is a collaborator fault and
// maps to 502.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, amm.ErrPoolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, amm.ErrPoolExists):
		status = http.StatusConflict
	case errors.Is(err, amm.ErrReentrant):
		status = http.StatusLocked
	case errors.Is(err, amm.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, amm.ErrTransferFailed):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
