package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/synaptica-ai/vetpathogen/pkg/classifier"
	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
	"github.com/synaptica-ai/vetpathogen/pkg/observability/metrics"
	"github.com/synaptica-ai/vetpathogen/pkg/resistance"
	"github.com/synaptica-ai/vetpathogen/pkg/storage"
)

// ErrInputNotFound matches fs.ErrNotExist as well.
var ErrInputNotFound = fmt.Errorf("isolate dataset not found: %w", fs.ErrNotExist)

type Request struct {
	InputPath  string
	OutputPath string
	// Seed makes the resistance draws reproducible when set.
	Seed *int64
}

type Result struct {
	RunID      string
	Table      *models.Table
	OutputPath string
	Rows       int
	Duration   time.Duration
}

// Service runs load -> classify -> predict -> save.
type Service struct {
	classifier *classifier.Classifier
	predictor  *resistance.Predictor
	delimiter  rune
}

// NewService wires the stages. Nil stages fall back to the built-in rules and
// an entropy-seeded predictor; a zero delimiter means pick by file extension.
func NewService(c *classifier.Classifier, p *resistance.Predictor, delimiter rune) (*Service, error) {
	if c == nil {
		var err error
		if c, err = classifier.NewClassifier(classifier.DefaultRules()); err != nil {
			return nil, err
		}
	}
	if p == nil {
		p = resistance.NewPredictor()
	}
	return &Service{classifier: c, predictor: p, delimiter: delimiter}, nil
}

func (s *Service) GenerateReport(ctx context.Context, req Request) (_ *Result, err error) {
	start := time.Now()
	runID := uuid.New().String()
	log := logger.WithFields(logrus.Fields{
		"run_id": runID,
		"input":  req.InputPath,
		"output": req.OutputPath,
	})
	defer func() {
		metrics.ObserveReport(err)
		if err != nil {
			log.WithError(err).Error("Report generation failed")
		}
	}()

	if _, err := os.Stat(req.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, req.InputPath)
		}
		return nil, err
	}

	isolates, err := storage.LoadTable(req.InputPath, s.delimiter)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classified, err := s.classifier.Classify(isolates)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enriched, err := s.predictor.Predict(classified, req.Seed)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputPath, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	if err := storage.SaveTable(outputPath, enriched, s.delimiter); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      runID,
		Table:      enriched,
		OutputPath: outputPath,
		Rows:       enriched.Len(),
		Duration:   time.Since(start),
	}
	log.WithFields(logrus.Fields{
		"rows":        result.Rows,
		"duration_ms": result.Duration.Milliseconds(),
	}).Info("Report generated")
	return result, nil
}

// GenerateReport runs the pipeline with the built-in rules.
func GenerateReport(inputPath, outputPath string, seed *int64) (*models.Table, error) {
	svc, err := NewService(nil, nil, 0)
	if err != nil {
		return nil, err
	}
	result, err := svc.GenerateReport(context.Background(), Request{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Seed:       seed,
	})
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}
