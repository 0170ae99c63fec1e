package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
)

// decodeTables starts from the seed dataset and overlays every stored value.
func decodeTables(stored map[string][]byte) (*model.Tables, error) {
	t := model.Seed()
	for key, raw := range stored {
		ref, err := t.Ref(key)
		if err != nil {
			// Keys written by a newer build are left alone.
			continue
		}
		if err := json.Unmarshal(raw, ref); err != nil {
			return nil, fmt.Errorf("decode table %s: %w", key, err)
		}
	}
	return &t, nil
}

func encodeTables(t *model.Tables, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		ref, err := t.Ref(key)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(ref)
		if err != nil {
			return nil, fmt.Errorf("encode table %s: %w", key, err)
		}
		out[key] = raw
	}
	return out, nil
}
