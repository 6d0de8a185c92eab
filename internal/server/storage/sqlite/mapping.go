package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
)

// ListMappings returns mappings of bar ordered by server name
func (s *Storage) ListMappings(ctx context.Context, barID string) ([]models.ServerMapping, error) {
	query := `
		SELECT id, bar_id, server_name, user_id, created_at
		FROM server_mappings
		WHERE bar_id = ?
		ORDER BY server_name
	`

	rows, err := s.db.QueryContext(ctx, query, barID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	mappings := make([]models.ServerMapping, 0)
	for rows.Next() {
		var m models.ServerMapping
		if err := rows.Scan(&m.ID, &m.BarID, &m.ServerName, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return mappings, nil
}

// UpsertMapping creates or replaces the mapping for (bar, server name)
func (s *Storage) UpsertMapping(ctx context.Context, mapping *models.ServerMapping) error {
	mapping.ServerName = strings.TrimSpace(mapping.ServerName)

	// server_name объявлен с COLLATE NOCASE, конфликт ловится без учёта регистра
	query := `
		INSERT INTO server_mappings (id, bar_id, server_name, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (bar_id, server_name) DO UPDATE SET
			server_name = excluded.server_name,
			user_id = excluded.user_id
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		mapping.ID,
		mapping.BarID,
		mapping.ServerName,
		mapping.UserID,
		mapping.CreatedAt.UTC(),
	).Scan(&mapping.ID, &mapping.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping: %w", err)
	}

	return nil
}

// DeleteMapping removes the mapping for (bar, server name)
func (s *Storage) DeleteMapping(ctx context.Context, barID, serverName string) error {
	query := `DELETE FROM server_mappings WHERE bar_id = ? AND server_name = ?`

	result, err := s.db.ExecContext(ctx, query, barID, strings.TrimSpace(serverName))
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrMappingNotFound
	}

	return nil
}

// ResolveServerName returns the user mapped to serverName in bar
func (s *Storage) ResolveServerName(ctx context.Context, barID, serverName string) (string, error) {
	query := `SELECT user_id FROM server_mappings WHERE bar_id = ? AND server_name = ?`

	var userID string
	err := s.db.QueryRowContext(ctx, query, barID, strings.TrimSpace(serverName)).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrMappingNotFound
		}
		return "", fmt.Errorf("failed to resolve server name: %w", err)
	}
	return userID, nil
}
