package handlers

import (
	"context"
	"net/http"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

// RulesAdmin defines the rule management operations used by the handler.
type RulesAdmin interface {
	ActiveRules() []entities.RuleDefinition
	Reload(ctx context.Context) (int, error)
}

// RulesHandler serves the active rule set and triggers reloads.
type RulesHandler struct {
	service RulesAdmin
}

// NewRulesHandler creates a new rules handler.
func NewRulesHandler(service RulesAdmin) *RulesHandler {
	return &RulesHandler{
		service: service,
	}
}

// ListRules handles GET /api/admin/rules
func (h *RulesHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules := h.service.ActiveRules()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"rules": rules,
		"count": len(rules),
	})
}

// ReloadRules handles POST /api/admin/rules/reload. A rule set that fails
// validation is rejected as a whole and the previous rules stay active.
func (h *RulesHandler) ReloadRules(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Reload(r.Context())
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeConfiguration:
				respondWithError(w, http.StatusUnprocessableEntity, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "reloaded",
		"ruleCount": count,
	})
}
