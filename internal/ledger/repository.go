package ledger

import (
	"context"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
)

// Repository round-trips whole tables keyed by model table keys. Tables that
// are absent from the store load as their model.Seed value.
type Repository interface {
	Load(ctx context.Context) (*model.Tables, error)

	// Save writes the listed tables atomically.
	Save(ctx context.Context, t *model.Tables, keys []string) error
}
