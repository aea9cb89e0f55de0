package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

// AuditReader defines the audit retrieval operations used by the handler.
type AuditReader interface {
	GetAudit(ctx context.Context, consultID string, revision int) (*entities.AuditRecord, error)
	ListAudits(ctx context.Context, limit int) ([]entities.AuditRecord, error)
}

// AuditHandler serves the audit trail for administrators.
type AuditHandler struct {
	service AuditReader
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(service AuditReader) *AuditHandler {
	return &AuditHandler{
		service: service,
	}
}

// GetAudit handles GET /api/admin/audit/{consultId}. The optional
// revision query parameter selects an older revision; without it the
// latest record is returned.
func (h *AuditHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	consultID := r.PathValue("consultId")
	if consultID == "" {
		respondWithError(w, http.StatusBadRequest, "consultId is required")
		return
	}

	revision := 0
	if raw := r.URL.Query().Get("revision"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "revision must be a positive integer")
			return
		}
		revision = parsed
	}

	record, err := h.service.GetAudit(r.Context(), consultID, revision)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// ListAudits handles GET /api/admin/audit
func (h *AuditHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.service.ListAudits(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list audit records")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"audits": records,
		"count":  len(records),
	})
}
