// Package server exposes the billsplit services over a JSON HTTP API. It
// is thin glue: request decoding, error-to-status mapping and middleware.
// All computation lives in the calculator and service packages.
package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/billsplit/billsplit/internal/service"
)

// Server wires the services into an http.Handler.
type Server struct {
	splits *service.SplitService
	groups *service.GroupService
}

// New creates a Server over the given services.
func New(splits *service.SplitService, groups *service.GroupService) *Server {
	return &Server{splits: splits, groups: groups}
}

// Handler returns the fully-routed handler with logging, metrics and CORS
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/split/allocate", s.handleAllocate)
	mux.HandleFunc("POST /api/scan", s.handleScan)

	mux.HandleFunc("POST /api/calculations", s.handleSaveCalculation)
	mux.HandleFunc("GET /api/calculations", s.handleListCalculations)
	mux.HandleFunc("DELETE /api/calculations/{id}", s.handleDeleteCalculation)
	mux.HandleFunc("DELETE /api/calculations", s.handleClearCalculations)

	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("POST /api/groups/{id}/members", s.handleAddMember)
	mux.HandleFunc("DELETE /api/groups/{id}/members/{name}", s.handleRemoveMember)
	mux.HandleFunc("POST /api/groups/{id}/expenses", s.handleAddExpense)
	mux.HandleFunc("GET /api/groups/{id}/balances", s.handleBalances)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(corsMiddleware(mux))
}

// NewHTTPServer builds an *http.Server with sane timeouts on the given
// address.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}
