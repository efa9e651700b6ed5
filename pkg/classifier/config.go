package classifier

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	SpeciesEscherichiaColi       = "Escherichia_coli"
	SpeciesPseudomonasAeruginosa = "Pseudomonas_aeruginosa"
	SpeciesStaphylococcusAureus  = "Staphylococcus_aureus"
)

// Rule maps a sequence motif to a species. Rules are evaluated in the order
// they are listed.
type Rule struct {
	Name    string `yaml:"name" json:"name"`
	Motif   string `yaml:"motif" json:"motif"`
	Species string `yaml:"species" json:"species"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// UnmarshalYAML treats a rule without an enabled key as enabled.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	type plain Rule
	decoded := plain{Enabled: true}
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*r = Rule(decoded)
	return nil
}

type RulesConfig struct {
	Rules    []Rule `yaml:"rules" json:"rules"`
	Fallback string `yaml:"fallback" json:"fallback"`
}

func LoadRules(path string) (RulesConfig, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return RulesConfig{}, err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return RulesConfig{}, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return RulesConfig{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return cfg, nil
}

func DefaultRules() RulesConfig {
	return RulesConfig{
		Rules: []Rule{
			{Name: "gcg-motif", Motif: "GCG", Species: SpeciesEscherichiaColi, Enabled: true},
			{Name: "ccc-motif", Motif: "CCC", Species: SpeciesPseudomonasAeruginosa, Enabled: true},
		},
		Fallback: SpeciesStaphylococcusAureus,
	}
}

func (c RulesConfig) validate() error {
	if len(c.Rules) == 0 {
		return errors.New("no classification rules configured")
	}
	enabled := 0
	for i, rule := range c.Rules {
		if rule.Enabled {
			enabled++
		}
		if rule.Motif == "" {
			return fmt.Errorf("rule %d (%s): empty motif", i, rule.Name)
		}
		if rule.Species == "" {
			return fmt.Errorf("rule %d (%s): empty species", i, rule.Name)
		}
	}
	if enabled == 0 {
		return errors.New("every classification rule is disabled")
	}
	if c.Fallback == "" {
		return errors.New("fallback species required")
	}
	return nil
}
