package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SettingsRepository stores one JSON document per key.
type SettingsRepository interface {
	// Get decodes the document into dst; found is false when nothing is stored.
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Put(ctx context.Context, key string, doc any, at time.Time) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM settings WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode settings %q: %w", key, err)
	}
	return true, nil
}

func (r *settingsRepository) Put(ctx context.Context, key string, doc any, at time.Time) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode settings %q: %w", key, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		key, raw, at)
	return err
}
