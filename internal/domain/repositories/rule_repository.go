package repositories

import (
	"context"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// RuleRepository loads rule definitions from a backing source (YAML file or
// database table). Definitions must be returned in their authored order;
// that order is the determinism tie-break for the whole engine.
type RuleRepository interface {
	LoadRules(ctx context.Context) ([]entities.RuleDefinition, error)
}
