package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/database"
	"github.com/fekuna/omnipos-ledger-service/internal/ledger"
	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func newSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := database.NewSQLite(&database.Config{
		Path:         filepath.Join(t.TempDir(), "ledger.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		BusyTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func newRedis(t *testing.T) *RedisRepository {
	t.Helper()
	addr := os.Getenv("LEDGER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LEDGER_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	keys := make([]string, len(model.AllKeys))
	for i, k := range model.AllKeys {
		keys[i] = redisKeyPrefix + k
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		t.Fatalf("reset redis: %v", err)
	}
	t.Cleanup(func() {
		rdb.Del(context.Background(), keys...)
		rdb.Close()
	})
	return NewRedisRepository(rdb)
}

func repositories(t *testing.T) map[string]func(*testing.T) ledger.Repository {
	return map[string]func(*testing.T) ledger.Repository{
		"memory": func(*testing.T) ledger.Repository { return NewMemoryRepository() },
		"sqlite": func(t *testing.T) ledger.Repository { return newSQLite(t) },
		"redis":  func(t *testing.T) ledger.Repository { return newRedis(t) },
	}
}

func TestLoadSeedsMissingTables(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			tables, err := repo.Load(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if !tables.BottlePrice.Equal(model.DefaultBottlePrice) {
				t.Errorf("price = %s, want default", tables.BottlePrice)
			}
			if i := ledger.BottledWaterIndex(tables.Inventory); i < 0 || tables.Inventory[i].Stock != 500 {
				t.Errorf("seed inventory = %+v", tables.Inventory)
			}
			if tables.Customers == nil || len(tables.Customers) != 0 {
				t.Errorf("customers = %v, want empty table", tables.Customers)
			}
		})
	}
}

func TestSaveRoundTripsTouchedTables(t *testing.T) {
	for name, open := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			ctx := context.Background()

			tables, err := repo.Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			salesman := int64(7)
			tables.Customers = append(tables.Customers, model.Customer{
				ID:                 11,
				Name:               "Aslam",
				Mobile:             "0300",
				SalesmanID:         &salesman,
				DeliveryDays:       []string{"Friday"},
				TotalBalance:       decimal.RequireFromString("150.50"),
				EmptyBottlesOnHand: -2,
			})
			tables.BottlePrice = decimal.NewFromInt(250)
			// Changed but not listed as touched: must not be written.
			tables.Inventory[0].Stock = 1

			if err := repo.Save(ctx, tables, []string{model.KeyCustomers, model.KeyBottlePrice}); err != nil {
				t.Fatal(err)
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Customers) != 1 {
				t.Fatalf("customers = %+v", got.Customers)
			}
			c := got.Customers[0]
			if c.Name != "Aslam" || *c.SalesmanID != 7 || c.EmptyBottlesOnHand != -2 || c.DeliveryDays[0] != "Friday" {
				t.Errorf("customer = %+v", c)
			}
			if !c.TotalBalance.Equal(decimal.RequireFromString("150.5")) {
				t.Errorf("balance = %s", c.TotalBalance)
			}
			if !got.BottlePrice.Equal(decimal.NewFromInt(250)) {
				t.Errorf("price = %s", got.BottlePrice)
			}
			if got.Inventory[0].Stock != 500 {
				t.Errorf("untouched inventory was saved: stock = %d", got.Inventory[0].Stock)
			}

			// Overwrite an existing key.
			got.Customers = got.Customers[:0]
			if err := repo.Save(ctx, got, []string{model.KeyCustomers}); err != nil {
				t.Fatal(err)
			}
			again, err := repo.Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(again.Customers) != 0 || !again.BottlePrice.Equal(decimal.NewFromInt(250)) {
				t.Errorf("after overwrite: customers = %d, price = %s", len(again.Customers), again.BottlePrice)
			}
		})
	}
}

func TestSaveRejectsUnknownKey(t *testing.T) {
	repo := NewMemoryRepository()
	tables := model.Seed()
	if err := repo.Save(context.Background(), &tables, []string{"orders"}); err == nil {
		t.Fatal("expected an error for an unknown table key")
	}
}

func TestMemoryRepositoryDoesNotShareSlices(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	tables := model.Seed()
	if err := repo.Save(ctx, &tables, []string{model.KeyInventory}); err != nil {
		t.Fatal(err)
	}
	tables.Inventory[0].Stock = 0

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Inventory[0].Stock != 500 {
		t.Errorf("stored table aliased caller slice: stock = %d", got.Inventory[0].Stock)
	}
}
