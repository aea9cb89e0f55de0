package main

import (
	"context"
	"log"

	"github.com/doug-martin/goqu/v9"

	"github.com/Adeen16/Rural-Clinic-AI/internal/adapters/rulefile"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/postgres"
	"github.com/Adeen16/Rural-Clinic-AI/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS triage_rules (
	position    SERIAL PRIMARY KEY,
	rule_id     TEXT NOT NULL UNIQUE,
	rule_name   TEXT NOT NULL,
	condition   TEXT NOT NULL,
	base_score  DOUBLE PRECISION NOT NULL,
	weight      DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS triage_audits (
	id                 UUID PRIMARY KEY,
	consult_id         TEXT NOT NULL,
	revision           INTEGER NOT NULL,
	input_symptoms     JSONB NOT NULL,
	rules_executed     JSONB NOT NULL,
	final_triage_level INTEGER NOT NULL,
	total_score        DOUBLE PRECISION NOT NULL,
	execution_time_ms  DOUBLE PRECISION NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL,
	UNIQUE (consult_id, revision)
);

CREATE INDEX IF NOT EXISTS idx_triage_audits_consult ON triage_audits (consult_id, revision DESC);
`

// Seeds the database with the default rule set from config/rules.yaml.
// Run with: go run scripts/seed.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema created")

	defs, err := rulefile.NewYAMLAdapter(cfg.Rules.FilePath).LoadRules(ctx)
	if err != nil {
		log.Fatalf("Failed to load rule definitions: %v", err)
	}

	dialect := goqu.Dialect("postgres")
	for _, def := range defs {
		sql, _, err := dialect.Insert("triage_rules").
			Cols("rule_id", "rule_name", "condition", "base_score", "weight").
			Vals(goqu.Vals{def.RuleID, def.RuleName, def.Condition, def.BaseScore, def.Weight}).
			OnConflict(goqu.DoUpdate("rule_id", goqu.Record{
				"rule_name":  def.RuleName,
				"condition":  def.Condition,
				"base_score": def.BaseScore,
				"weight":     def.Weight,
			})).
			ToSQL()
		if err != nil {
			log.Fatalf("Failed to build insert for %s: %v", def.RuleID, err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, sql); err != nil {
			log.Fatalf("Failed to seed rule %s: %v", def.RuleID, err)
		}
		log.Printf("Seeded rule %s (%s)", def.RuleID, def.RuleName)
	}

	log.Printf("Done: %d rules seeded", len(defs))
}
