package routes

import (
	"net/http"

	"github.com/Adeen16/Rural-Clinic-AI/internal/api/handlers"
	"github.com/Adeen16/Rural-Clinic-AI/internal/api/middleware"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	triageHandler *handlers.TriageHandler
	auditHandler  *handlers.AuditHandler
	rulesHandler  *handlers.RulesHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	triageHandler *handlers.TriageHandler,
	auditHandler *handlers.AuditHandler,
	rulesHandler *handlers.RulesHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		triageHandler:   triageHandler,
		auditHandler:    auditHandler,
		rulesHandler:    rulesHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Triage endpoint
	r.mux.HandleFunc("POST /api/triage", r.triageHandler.EvaluateTriage)

	// Admin audit endpoints
	r.mux.HandleFunc("GET /api/admin/audit", r.auditHandler.ListAudits)
	r.mux.HandleFunc("GET /api/admin/audit/{consultId}", r.auditHandler.GetAudit)

	// Admin rule endpoints
	r.mux.HandleFunc("GET /api/admin/rules", r.rulesHandler.ListRules)
	r.mux.HandleFunc("POST /api/admin/rules/reload", r.rulesHandler.ReloadRules)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
