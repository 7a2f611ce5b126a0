// Package services - services/ingestion_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-bet-tips/logger"
	"go-bet-tips/models"
	"go-bet-tips/store"
)

// ErrIngestion wraps any failure of the external generation call, including
// a batch rejected for a malformed item.
var ErrIngestion = errors.New("failed to fetch predictions")

// IngestionState is the observable lifecycle of the bootstrap task.
type IngestionState string

const (
	IngestionNotStarted IngestionState = "not_started"
	IngestionInFlight   IngestionState = "in_flight"
	IngestionCompleted  IngestionState = "completed"
)

// PredictionGenerator is the external generation collaborator.
type PredictionGenerator interface {
	Generate(ctx context.Context) ([]models.PredictionSeed, error)
}

// IngestionService runs the one-shot catalog bootstrap. It is modeled as an
// explicit task so callers (and tests) can observe NotStarted, InFlight and
// Completed, with the terminal error kept for the page-level error state.
type IngestionService struct {
	mu          sync.Mutex
	state       IngestionState
	lastErr     error
	predictions *store.PredictionRepo
	generator   PredictionGenerator
}

// NewIngestionService wires the catalog and the generator.
func NewIngestionService(predictions *store.PredictionRepo, generator PredictionGenerator) *IngestionService {
	return &IngestionService{
		state:       IngestionNotStarted,
		predictions: predictions,
		generator:   generator,
	}
}

// State returns the task state and, once Completed, its error (nil on success).
func (s *IngestionService) State() (IngestionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.lastErr
}

// Run performs the bootstrap. A non-empty catalog completes immediately
// without calling the generator; this is what makes the bootstrap one-shot
// across restarts. A failed run leaves the catalog empty and is not retried
// automatically — an admin can call Run again.
func (s *IngestionService) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state == IngestionInFlight {
		s.mu.Unlock()
		return nil
	}
	if s.predictions.Count() > 0 {
		s.state = IngestionCompleted
		s.lastErr = nil
		s.mu.Unlock()
		logger.Info.Println("Ingestion: catalog already populated, skipping bootstrap")
		return nil
	}
	s.state = IngestionInFlight
	s.mu.Unlock()

	started := time.Now()
	seeds, err := s.generator.Generate(ctx)
	if err == nil {
		err = validateSeeds(seeds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = IngestionCompleted
	if err != nil {
		s.lastErr = fmt.Errorf("%w: %v", ErrIngestion, err)
		logger.Error.Printf("Ingestion: bootstrap failed after %s: %v", time.Since(started), err)
		return s.lastErr
	}

	// ids are seeded from the clock so they sit far above anything the
	// max+1 rule will ever assign afterwards
	base := int(time.Now().Unix())
	batch := make([]models.Prediction, len(seeds))
	for i, seed := range seeds {
		batch[i] = models.Prediction{
			ID:        base + i,
			MatchName: seed.MatchName,
			League:    seed.League,
			Tip:       seed.Tip,
			Odds:      seed.Odds,
			Kickoff:   seed.Kickoff,
			Type:      seed.Type,
			Result:    models.ResultPending,
		}
	}
	s.predictions.AddBatch(batch)
	s.lastErr = nil

	latency := time.Since(started)
	logger.Info.Printf("Ingestion: bootstrapped %d predictions in %s", len(batch), latency)
	publishIngestionLatency(float64(latency.Milliseconds()))
	return nil
}

// validateSeeds rejects the whole batch when any item is malformed.
func validateSeeds(seeds []models.PredictionSeed) error {
	if len(seeds) == 0 {
		return errors.New("generator returned an empty batch")
	}
	for i, seed := range seeds {
		if seed.MatchName == "" || seed.League == "" || seed.Tip == "" ||
			seed.Odds == "" || seed.Kickoff == "" {
			return fmt.Errorf("item %d is missing required fields", i)
		}
		if !seed.Type.Valid() {
			return fmt.Errorf("item %d has unknown tip type %q", i, seed.Type)
		}
	}
	return nil
}

// publishIngestionLatency is wired to the metrics publisher in main;
// tests leave it as a no-op.
var publishIngestionLatency = func(float64) {}

// SetIngestionLatencyPublisher points the latency gauge at a publisher.
// Keeps this package free of a websocket/metrics import cycle.
func SetIngestionLatencyPublisher(fn func(float64)) {
	if fn != nil {
		publishIngestionLatency = fn
	}
}
