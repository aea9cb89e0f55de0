package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adeen16/Rural-Clinic-AI/internal/api/handlers"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

type stubAuditService struct {
	record       *entities.AuditRecord
	records      []entities.AuditRecord
	err          error
	gotConsultID string
	gotRevision  int
	gotLimit     int
}

func (s *stubAuditService) GetAudit(_ context.Context, consultID string, revision int) (*entities.AuditRecord, error) {
	s.gotConsultID = consultID
	s.gotRevision = revision
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubAuditService) ListAudits(_ context.Context, limit int) ([]entities.AuditRecord, error) {
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func TestAuditHandler_GetAudit_Latest(t *testing.T) {
	service := &stubAuditService{
		record: &entities.AuditRecord{
			ConsultID:        "CONSULT-123",
			Revision:         2,
			TotalScore:       55.5,
			FinalTriageLevel: entities.LevelUrgent,
		},
	}
	handler := handlers.NewAuditHandler(service)

	req := httptest.NewRequest("GET", "/api/admin/audit/CONSULT-123", nil)
	req.SetPathValue("consultId", "CONSULT-123")
	w := httptest.NewRecorder()

	handler.GetAudit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONSULT-123", service.gotConsultID)
	assert.Equal(t, 0, service.gotRevision)

	var response entities.AuditRecord
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, 2, response.Revision)
	assert.Equal(t, 55.5, response.TotalScore)
}

func TestAuditHandler_GetAudit_SpecificRevision(t *testing.T) {
	service := &stubAuditService{
		record: &entities.AuditRecord{ConsultID: "CONSULT-123", Revision: 1},
	}
	handler := handlers.NewAuditHandler(service)

	req := httptest.NewRequest("GET", "/api/admin/audit/CONSULT-123?revision=1", nil)
	req.SetPathValue("consultId", "CONSULT-123")
	w := httptest.NewRecorder()

	handler.GetAudit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, service.gotRevision)
}

func TestAuditHandler_GetAudit_InvalidRevision(t *testing.T) {
	handler := handlers.NewAuditHandler(&stubAuditService{})

	req := httptest.NewRequest("GET", "/api/admin/audit/CONSULT-123?revision=zero", nil)
	req.SetPathValue("consultId", "CONSULT-123")
	w := httptest.NewRecorder()

	handler.GetAudit(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHandler_GetAudit_NotFound(t *testing.T) {
	service := &stubAuditService{
		err: apperrors.NewNotFoundError("audit record not found"),
	}
	handler := handlers.NewAuditHandler(service)

	req := httptest.NewRequest("GET", "/api/admin/audit/CONSULT-MISSING", nil)
	req.SetPathValue("consultId", "CONSULT-MISSING")
	w := httptest.NewRecorder()

	handler.GetAudit(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "audit record not found", response["error"])
}

func TestAuditHandler_ListAudits(t *testing.T) {
	service := &stubAuditService{
		records: []entities.AuditRecord{
			{ConsultID: "CONSULT-2", Revision: 1},
			{ConsultID: "CONSULT-1", Revision: 1},
		},
	}
	handler := handlers.NewAuditHandler(service)

	req := httptest.NewRequest("GET", "/api/admin/audit?limit=10", nil)
	w := httptest.NewRecorder()

	handler.ListAudits(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, service.gotLimit)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, float64(2), response["count"])
}

func TestAuditHandler_ListAudits_InvalidLimit(t *testing.T) {
	handler := handlers.NewAuditHandler(&stubAuditService{})

	req := httptest.NewRequest("GET", "/api/admin/audit?limit=-1", nil)
	w := httptest.NewRecorder()

	handler.ListAudits(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
