package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Adeen16/Rural-Clinic-AI/internal/application/services"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

// TriageEvaluator defines the triage operations used by the handler.
type TriageEvaluator interface {
	Evaluate(ctx context.Context, input services.EvaluateInput) (*entities.AuditRecord, error)
}

// TriageHandler handles triage evaluation requests.
type TriageHandler struct {
	service TriageEvaluator
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(service TriageEvaluator) *TriageHandler {
	return &TriageHandler{
		service: service,
	}
}

type triageRequest struct {
	ConsultID  string                     `json:"consultId"`
	Symptoms   []entities.Symptom         `json:"symptoms"`
	Attributes entities.PatientAttributes `json:"patientAttributes"`
}

type triageResponse struct {
	ConsultID         string   `json:"consultId"`
	Revision          int      `json:"revision"`
	TriageLevel       int      `json:"triageLevel"`
	LevelName         string   `json:"levelName"`
	RecommendedAction string   `json:"recommendedAction"`
	TotalScore        float64  `json:"totalScore"`
	RulesTriggered    []string `json:"rulesTriggered"`
	ExecutionTimeMs   float64  `json:"executionTimeMs"`
}

// EvaluateTriage handles POST /api/triage
func (h *TriageHandler) EvaluateTriage(w http.ResponseWriter, r *http.Request) {
	var payload triageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	record, err := h.service.Evaluate(r.Context(), services.EvaluateInput{
		ConsultID:  payload.ConsultID,
		Symptoms:   payload.Symptoms,
		Attributes: payload.Attributes,
	})
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
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

	level := record.FinalTriageLevel
	respondWithJSON(w, http.StatusOK, triageResponse{
		ConsultID:         record.ConsultID,
		Revision:          record.Revision,
		TriageLevel:       int(level),
		LevelName:         level.Name(),
		RecommendedAction: level.RecommendedAction(),
		TotalScore:        record.TotalScore,
		RulesTriggered:    record.TriggeredRuleIDs(),
		ExecutionTimeMs:   record.ExecutionTimeMs,
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
