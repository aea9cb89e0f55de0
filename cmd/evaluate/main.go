package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Adeen16/Rural-Clinic-AI/internal/adapters/rulefile"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/evaluation"
)

// caseFile is the JSON input format: one consult to run through the rules.
type caseFile struct {
	ConsultID  string                     `json:"consultId"`
	Symptoms   []entities.Symptom         `json:"symptoms"`
	Attributes entities.PatientAttributes `json:"patientAttributes"`
}

func main() {
	rulesPath := flag.String("rules", "config/rules.yaml", "path to the rule definitions file")
	casePath := flag.String("case", "", "path to a JSON file with symptoms to evaluate")
	flag.Parse()

	if *casePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	defs, err := rulefile.NewYAMLAdapter(*rulesPath).LoadRules(context.Background())
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	store, err := evaluation.NewStore(defs)
	if err != nil {
		log.Fatalf("Failed to compile rules: %v", err)
	}

	data, err := os.ReadFile(*casePath)
	if err != nil {
		log.Fatalf("Failed to read case file: %v", err)
	}
	var input caseFile
	if err := json.Unmarshal(data, &input); err != nil {
		log.Fatalf("Failed to parse case file: %v", err)
	}
	if input.ConsultID == "" {
		input.ConsultID = "CONSULT-LOCAL"
	}

	start := time.Now()
	executions, totalScore := evaluation.Run(input.Symptoms, input.Attributes, store)
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0

	level := evaluation.Classify(totalScore)
	record := evaluation.BuildAuditRecord(input.ConsultID, 1, input.Symptoms, executions, totalScore, level, elapsedMs)

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode audit record: %v", err)
	}
	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "triage level %d (%s), score %.1f\n", int(level), level.Name(), totalScore)
}
