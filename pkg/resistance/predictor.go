package resistance

import (
	"math/rand/v2"
	"sync"

	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
	"github.com/synaptica-ai/vetpathogen/pkg/observability/metrics"
)

const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

var riskLevels = [...]string{RiskLow, RiskMedium, RiskHigh}

func RiskLevels() []string {
	return append([]string(nil), riskLevels[:]...)
}

// Predictor draws mock resistance risk labels from a generator it owns.
type Predictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Predictor)

// WithSeed makes the predictor's own generator deterministic.
func WithSeed(seed int64) Option {
	return func(p *Predictor) {
		p.rng = newGenerator(seed)
	}
}

func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newGenerator(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Draw returns n independently drawn labels. A non-nil seed draws from a
// fresh generator scoped to this call; otherwise the predictor's generator is
// used.
func (p *Predictor) Draw(n int, seed *int64) []string {
	labels := make([]string, n)
	if seed != nil {
		fill(labels, newGenerator(*seed))
		return labels
	}

	p.mu.Lock()
	fill(labels, p.rng)
	p.mu.Unlock()
	return labels
}

func fill(labels []string, rng *rand.Rand) {
	for i := range labels {
		labels[i] = riskLevels[rng.IntN(len(riskLevels))]
	}
}

// Predict returns a copy of table with a resistance_risk column appended.
func (p *Predictor) Predict(table *models.Table, seed *int64) (*models.Table, error) {
	labels := p.Draw(table.Len(), seed)
	out, err := table.WithColumn(models.ColumnResistanceRisk, labels)
	if err != nil {
		return nil, err
	}

	metrics.ObserveRisksAssigned(len(labels))
	entry := logger.WithField("rows", len(labels))
	if seed != nil {
		entry = entry.WithField("seed", *seed)
	}
	entry.Debug("Resistance risk assigned")
	return out, nil
}

// PredictResistance labels table using a fresh predictor.
func PredictResistance(table *models.Table, seed *int64) (*models.Table, error) {
	return NewPredictor().Predict(table, seed)
}
