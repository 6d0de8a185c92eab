package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
)

const barColumns = `b.id, b.name, b.address, b.phone, b.owner_id, b.is_active, b.created_at, b.updated_at`

// CreateBar stores a bar and its owner membership in one transaction
func (s *Storage) CreateBar(ctx context.Context, bar *models.Bar) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO bars (id, name, address, phone, owner_id, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query,
			bar.ID,
			bar.Name,
			bar.Address,
			bar.Phone,
			bar.OwnerID,
			bar.IsActive,
			bar.CreatedAt.UTC(),
			bar.UpdatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert bar: %w", err)
		}

		member := `INSERT INTO bar_members (bar_id, user_id, role, created_at) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, member, bar.ID, bar.OwnerID, string(models.RoleOwner), bar.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert owner membership: %w", err)
		}
		return nil
	})
}

// GetBar retrieves bar by ID
func (s *Storage) GetBar(ctx context.Context, barID string) (*models.Bar, error) {
	query := `SELECT ` + barColumns + ` FROM bars b WHERE b.id = ?`

	bar, err := scanBar(s.db.QueryRowContext(ctx, query, barID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBarNotFound
		}
		return nil, fmt.Errorf("failed to get bar: %w", err)
	}
	return bar, nil
}

// ListUserBars returns bars the user is a member of
func (s *Storage) ListUserBars(ctx context.Context, userID string) ([]models.Bar, error) {
	query := `
		SELECT ` + barColumns + `
		FROM bars b
		JOIN bar_members m ON m.bar_id = b.id
		WHERE m.user_id = ?
		ORDER BY b.name, b.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	bars := make([]models.Bar, 0)
	for rows.Next() {
		bar, err := scanBar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, *bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return bars, nil
}

// PatchBar applies the non-nil fields of patch with last-write-wins on clientUpdatedAt
func (s *Storage) PatchBar(ctx context.Context, barID string, patch models.BarPatch, clientUpdatedAt, now time.Time) (bool, error) {
	// nil указатели превращаются в NULL, COALESCE оставляет старое значение.
	// Условие на patched_at делает проверку и запись одним атомарным шагом.
	query := `
		UPDATE bars
		SET name = COALESCE(?, name),
			address = COALESCE(?, address),
			phone = COALESCE(?, phone),
			is_active = COALESCE(?, is_active),
			updated_at = ?,
			patched_at = ?
		WHERE id = ? AND (patched_at IS NULL OR patched_at <= ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		nullable(patch.Name),
		nullable(patch.Address),
		nullable(patch.Phone),
		nullable(patch.IsActive),
		now.UTC(),
		clientUpdatedAt.UTC(),
		barID,
		clientUpdatedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to patch bar: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows > 0 {
		return true, nil
	}

	// Либо бара нет, либо правка устарела
	if _, err := s.GetBar(ctx, barID); err != nil {
		return false, err
	}
	return false, nil
}

// GetMemberRole returns the role of user in bar
func (s *Storage) GetMemberRole(ctx context.Context, barID, userID string) (models.Role, error) {
	query := `SELECT role FROM bar_members WHERE bar_id = ? AND user_id = ?`

	var role string
	if err := s.db.QueryRowContext(ctx, query, barID, userID).Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotMember
		}
		return "", fmt.Errorf("failed to get member role: %w", err)
	}
	return models.Role(role), nil
}

// AddMember grants user access to bar, keeping an existing membership
func (s *Storage) AddMember(ctx context.Context, barID, userID string, role models.Role) error {
	query := `
		INSERT INTO bar_members (bar_id, user_id, role, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (bar_id, user_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, barID, userID, string(role)); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// ListMemberIDs returns IDs of all members of bar
func (s *Storage) ListMemberIDs(ctx context.Context, barID string) ([]string, error) {
	query := `SELECT user_id FROM bar_members WHERE bar_id = ? ORDER BY user_id`

	rows, err := s.db.QueryContext(ctx, query, barID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBar(row rowScanner) (*models.Bar, error) {
	bar := &models.Bar{}
	err := row.Scan(
		&bar.ID,
		&bar.Name,
		&bar.Address,
		&bar.Phone,
		&bar.OwnerID,
		&bar.IsActive,
		&bar.CreatedAt,
		&bar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return bar, nil
}

// nullable разыменовывает указатель, nil становится NULL
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
