package rulefile

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/repositories"
	apperrors "github.com/Adeen16/Rural-Clinic-AI/pkg/errors"
)

// YAMLAdapter loads rule definitions from a YAML file. The file's document
// order is the authored rule order.
type YAMLAdapter struct {
	path string
}

// NewYAMLAdapter creates a rule repository backed by the given file
func NewYAMLAdapter(path string) repositories.RuleRepository {
	return &YAMLAdapter{path: path}
}

type ruleFile struct {
	Rules []entities.RuleDefinition `yaml:"rules"`
}

// LoadRules reads and decodes the rule file
func (a *YAMLAdapter) LoadRules(ctx context.Context) ([]entities.RuleDefinition, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("failed to read rule file %s", a.path), err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("failed to parse rule file %s", a.path), err)
	}

	return file.Rules, nil
}
