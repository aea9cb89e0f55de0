package services

import (
	"context"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/repositories"
	"github.com/Adeen16/Rural-Clinic-AI/internal/evaluation"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/observability"
)

// RulesService exposes the active rule set and reloads it from the
// configured source. A reload replaces the whole set atomically; requests
// already in flight keep the store they started with.
type RulesService struct {
	source repositories.RuleRepository
	active *evaluation.ActiveStore
}

func NewRulesService(source repositories.RuleRepository, active *evaluation.ActiveStore) *RulesService {
	return &RulesService{
		source: source,
		active: active,
	}
}

// ActiveRules returns the rule definitions currently used for evaluation,
// in authored order.
func (s *RulesService) ActiveRules() []entities.RuleDefinition {
	return s.active.Current().Definitions()
}

// Reload fetches rule definitions from the source, compiles them and swaps
// the active store. On any configuration error the previous rules stay in
// effect untouched. Returns the number of active rules after the reload.
func (s *RulesService) Reload(ctx context.Context) (int, error) {
	ctx, span := observability.StartSpan(ctx, "RulesService.Reload")
	defer span.End()

	defs, err := s.source.LoadRules(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	store, err := evaluation.NewStore(defs)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	s.active.Swap(store)

	observability.LoggerFromContext(ctx).Info().
		Int("rule_count", store.Len()).
		Msg("Rule store reloaded")

	return store.Len(), nil
}
