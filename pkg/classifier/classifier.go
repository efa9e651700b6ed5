package classifier

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
	"github.com/synaptica-ai/vetpathogen/pkg/observability/metrics"
)

type compiledRule struct {
	rule  Rule
	motif string
}

// Classifier assigns species labels by first-match over its rules. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	rules    []compiledRule
	fallback string
}

var defaultClassifier = mustDefault()

func mustDefault() *Classifier {
	c, err := NewClassifier(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

func NewClassifier(cfg RulesConfig) (*Classifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var compiled []compiledRule
	for _, rule := range cfg.Rules {
		if !rule.Enabled {
			continue
		}
		compiled = append(compiled, compiledRule{rule: rule, motif: strings.ToUpper(rule.Motif)})
	}
	return &Classifier{rules: compiled, fallback: cfg.Fallback}, nil
}

// Species returns the label of the first rule whose motif occurs in sequence,
// ignoring case, or the fallback label.
func (c *Classifier) Species(sequence string) string {
	seq := strings.ToUpper(sequence)
	for _, r := range c.rules {
		if strings.Contains(seq, r.motif) {
			return r.rule.Species
		}
	}
	return c.fallback
}

// Classify returns a copy of table with a predicted_species column appended.
func (c *Classifier) Classify(table *models.Table) (*models.Table, error) {
	sequences, err := table.Column(models.ColumnSequence)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(sequences))
	counts := make(map[string]int)
	for i, seq := range sequences {
		labels[i] = c.Species(seq)
		counts[labels[i]]++
	}

	out, err := table.WithColumn(models.ColumnPredictedSpecies, labels)
	if err != nil {
		return nil, err
	}
	metrics.ObserveClassified(len(labels))
	logger.WithFields(logrus.Fields{
		"rows":    len(labels),
		"species": counts,
	}).Debug("Isolates classified")
	return out, nil
}

// ClassifySpecies applies the built-in rules to a single sequence.
func ClassifySpecies(sequence string) string {
	return defaultClassifier.Species(sequence)
}

// Classify applies the built-in rules to every row of table.
func Classify(table *models.Table) (*models.Table, error) {
	return defaultClassifier.Classify(table)
}
