package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetTemplateConfig returns the stored document for (user, variant), or nil if none exists
func (db *DB) GetTemplateConfig(ctx context.Context, userID uuid.UUID, variant string) ([]byte, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM template_configs WHERE user_id = $1 AND variant = $2`,
		userID, variant,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template config %s: %w", variant, err)
	}
	return doc, nil
}

// PutTemplateConfig overwrites the document for (user, variant)
func (db *DB) PutTemplateConfig(ctx context.Context, userID uuid.UUID, variant string, doc []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO template_configs (user_id, variant, document)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, variant) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		userID, variant, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save template config %s: %w", variant, err)
	}
	return nil
}

// ListTemplateConfigs returns every stored document of a user ordered by variant
func (db *DB) ListTemplateConfigs(ctx context.Context, userID uuid.UUID) ([]TemplateConfigRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, variant, document, updated_at
		 FROM template_configs WHERE user_id = $1 ORDER BY variant`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list template configs: %w", err)
	}
	defer rows.Close()

	var records []TemplateConfigRecord
	for rows.Next() {
		var rec TemplateConfigRecord
		if err := rows.Scan(&rec.UserID, &rec.Variant, &rec.Document, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template config: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template configs: %w", err)
	}
	return records, nil
}
