// Package store - store/predictions.go
package store

import (
	"errors"
	"sync"

	"go-bet-tips/models"
)

// ErrPredictionNotFound is returned when no prediction matches the given id.
var ErrPredictionNotFound = errors.New("prediction not found")

// PredictionRepo owns the prediction catalog, keyed by integer id.
type PredictionRepo struct {
	mu          sync.Mutex
	persister   Persister
	predictions []models.Prediction
}

// NewPredictionRepo loads the persisted catalog, or starts empty.
func NewPredictionRepo(p Persister) *PredictionRepo {
	r := &PredictionRepo{persister: p}
	p.Load(SlotPredictions, &r.predictions)
	return r
}

// List returns a copy of the catalog, most recent first.
func (r *PredictionRepo) List() []models.Prediction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Prediction, len(r.predictions))
	copy(out, r.predictions)
	return out
}

// Find returns the prediction with the given id, if any.
func (r *PredictionRepo) Find(id int) (models.Prediction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.predictions {
		if p.ID == id {
			return p, true
		}
	}
	return models.Prediction{}, false
}

// nextID computes max(existing ids)+1, or 1 for an empty catalog.
// Ids are never reused after deletion. Caller must hold the lock.
func (r *PredictionRepo) nextID() int {
	maxID := 0
	for _, p := range r.predictions {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// Add assigns the next id, prepends the prediction and returns it.
func (r *PredictionRepo) Add(p models.Prediction) models.Prediction {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	r.predictions = append([]models.Prediction{p}, r.predictions...)
	r.persister.Save(SlotPredictions, r.predictions)
	return p
}

// AddBatch inserts ingestion output with ids already assigned. The batch
// becomes the catalog head in the order given.
func (r *PredictionRepo) AddBatch(batch []models.Prediction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predictions = append(batch, r.predictions...)
	r.persister.Save(SlotPredictions, r.predictions)
}

// Update merges a patch into the prediction with the given id and returns
// the updated record.
func (r *PredictionRepo) Update(id int, patch models.PredictionPatch) (models.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.predictions {
		if r.predictions[i].ID == id {
			patch.Apply(&r.predictions[i])
			r.persister.Save(SlotPredictions, r.predictions)
			return r.predictions[i], nil
		}
	}
	return models.Prediction{}, ErrPredictionNotFound
}

// Remove deletes the prediction with the given id.
func (r *PredictionRepo) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.predictions {
		if r.predictions[i].ID == id {
			r.predictions = append(r.predictions[:i], r.predictions[i+1:]...)
			r.persister.Save(SlotPredictions, r.predictions)
			return nil
		}
	}
	return ErrPredictionNotFound
}

// Count returns the catalog size.
func (r *PredictionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.predictions)
}
