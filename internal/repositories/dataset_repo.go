package repositories

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetRepo is an in-memory registry of uploaded datasets. Tables live only
// in process memory; the cron sweep calls DeleteExpired to enforce the TTL.
type DatasetRepo struct {
	mu       sync.RWMutex
	datasets map[string]*models.Dataset
	ttl      time.Duration
}

func NewDatasetRepo(ttl time.Duration) *DatasetRepo {
	return &DatasetRepo{
		datasets: make(map[string]*models.Dataset),
		ttl:      ttl,
	}
}

// Save registers a table under a fresh uuid and returns the stored record.
func (r *DatasetRepo) Save(name string, table models.Table) *models.Dataset {
	now := time.Now()
	ds := &models.Dataset{
		ID:        uuid.NewString(),
		Name:      name,
		Table:     table,
		RowCount:  len(table.Rows),
		Columns:   table.Columns,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	r.mu.Lock()
	r.datasets[ds.ID] = ds
	r.mu.Unlock()

	return ds
}

// Get returns a dataset by id. Expired datasets act as missing even before
// the sweep removes them.
func (r *DatasetRepo) Get(id string) (*models.Dataset, error) {
	r.mu.RLock()
	ds, ok := r.datasets[id]
	r.mu.RUnlock()

	if !ok || time.Now().After(ds.ExpiresAt) {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

// List returns the live datasets ordered by creation time.
func (r *DatasetRepo) List() []*models.Dataset {
	now := time.Now()

	r.mu.RLock()
	out := make([]*models.Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		if now.Before(ds.ExpiresAt) {
			out = append(out, ds)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// DeleteExpired drops expired datasets and reports how many were removed.
func (r *DatasetRepo) DeleteExpired() int {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ds := range r.datasets {
		if now.After(ds.ExpiresAt) {
			delete(r.datasets, id)
			removed++
		}
	}
	return removed
}
