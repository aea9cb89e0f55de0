package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/repositories"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/postgres"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

const ruleTable = "triage_rules"

// RuleAdapter loads rule definitions from Postgres. The position column is
// the authored order; rows come back sorted by it so the store order is
// identical across reloads.
type RuleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRuleAdapter creates a new rule adapter
func NewRuleAdapter(client *postgres.Client) repositories.RuleRepository {
	return &RuleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LoadRules returns all rule definitions in authored order
func (a *RuleAdapter) LoadRules(ctx context.Context) ([]entities.RuleDefinition, error) {
	query, args, err := a.db.Select(
		"rule_id", "rule_name", "condition", "base_score", "weight",
	).From(ruleTable).
		Order(goqu.I("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rule query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load rule definitions", err)
	}
	defer rows.Close()

	var defs []entities.RuleDefinition
	for rows.Next() {
		var def entities.RuleDefinition
		if err := rows.Scan(&def.RuleID, &def.RuleName, &def.Condition, &def.BaseScore, &def.Weight); err != nil {
			return nil, apperrors.NewInternalError("failed to scan rule definition", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate rule definitions", err)
	}

	return defs, nil
}
