package repository

import (
	"context"
	"sync"

	"gerenciador-gastos/internal/models"
)

// MemoryDatasetRepository keeps the active dataset in process memory.
type MemoryDatasetRepository struct {
	mu      sync.RWMutex
	current *models.Dataset
}

func NewMemoryDatasetRepository() *MemoryDatasetRepository {
	return &MemoryDatasetRepository{}
}

func (r *MemoryDatasetRepository) Replace(_ context.Context, ds *models.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	r.mu.Lock()
	r.current = ds
	r.mu.Unlock()
	return nil
}

func (r *MemoryDatasetRepository) Current(_ context.Context) (*models.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, nil
}
