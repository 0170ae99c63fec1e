package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-ledger-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

type tableRow struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *SQLiteRepository) Load(ctx context.Context) (*model.Tables, error) {
	var rows []tableRow
	query := `SELECT key, value FROM ledger_tables`
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load ledger tables: %w", err)
	}

	stored := make(map[string][]byte, len(rows))
	for _, row := range rows {
		stored[row.Key] = []byte(row.Value)
	}
	return decodeTables(stored)
}

func (r *SQLiteRepository) Save(ctx context.Context, t *model.Tables, keys []string) error {
	encoded, err := encodeTables(t, keys)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsertQuery := `
        INSERT INTO ledger_tables (key, value, updated_at)
        VALUES (:key, :value, :updated_at)
        ON CONFLICT (key)
        DO UPDATE SET
            value = excluded.value,
            updated_at = excluded.updated_at
    `
	now := time.Now().UTC()
	for _, key := range keys {
		row := tableRow{Key: key, Value: string(encoded[key]), UpdatedAt: now}
		if _, err := tx.NamedExecContext(ctx, upsertQuery, row); err != nil {
			return fmt.Errorf("failed to save table %s: %w", key, err)
		}
	}

	return tx.Commit()
}
