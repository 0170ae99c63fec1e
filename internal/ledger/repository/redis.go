package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ledger:"

// RedisRepository keeps each table as a JSON string under "ledger:<table>".
type RedisRepository struct {
	rdb redis.UniversalClient
}

func NewRedisRepository(rdb redis.UniversalClient) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) Load(ctx context.Context) (*model.Tables, error) {
	keys := make([]string, len(model.AllKeys))
	for i, k := range model.AllKeys {
		keys[i] = redisKeyPrefix + k
	}

	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load ledger tables: %w", err)
	}

	stored := make(map[string][]byte, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		stored[model.AllKeys[i]] = []byte(s)
	}
	return decodeTables(stored)
}

func (r *RedisRepository) Save(ctx context.Context, t *model.Tables, keys []string) error {
	encoded, err := encodeTables(t, keys)
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Set(ctx, redisKeyPrefix+key, encoded[key], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save ledger tables: %w", err)
	}
	return nil
}
