package repository

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
)

// MemoryRepository stores encoded tables in process memory. Values go through
// the same JSON encoding as the durable stores so callers never share slices
// with it.
type MemoryRepository struct {
	mu     sync.RWMutex
	stored map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{stored: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(ctx context.Context) (*model.Tables, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return decodeTables(r.stored)
}

func (r *MemoryRepository) Save(ctx context.Context, t *model.Tables, keys []string) error {
	encoded, err := encodeTables(t, keys)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range encoded {
		r.stored[k] = v
	}
	return nil
}
