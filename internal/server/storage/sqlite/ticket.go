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

const ticketColumns = `id, bar_id, number, table_label, server_name, notes, status, payment_method, created_by, created_at, paid_at`

// CreateTicket stores an open ticket with the next number of its bar
func (s *Storage) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		// Нумерация сквозная в пределах бара, начиная с 1
		var number int64
		next := `SELECT COALESCE(MAX(number), 0) + 1 FROM tickets WHERE bar_id = ?`
		if err := tx.QueryRowContext(ctx, next, ticket.BarID).Scan(&number); err != nil {
			return fmt.Errorf("failed to allocate ticket number: %w", err)
		}

		query := `
			INSERT INTO tickets (id, bar_id, number, table_label, server_name, notes, status, created_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query,
			ticket.ID,
			ticket.BarID,
			number,
			ticket.TableLabel,
			ticket.ServerName,
			ticket.Notes,
			string(models.TicketStatusOpen),
			ticket.CreatedBy,
			ticket.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert ticket: %w", err)
		}

		ticket.Number = number
		ticket.Status = models.TicketStatusOpen
		return nil
	})
}

// GetTicket retrieves ticket by ID
func (s *Storage) GetTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	return getTicket(ctx, s.db, ticketID)
}

// ListTickets returns tickets of bar, newest first
func (s *Storage) ListTickets(ctx context.Context, barID string) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE bar_id = ? ORDER BY number DESC`

	rows, err := s.db.QueryContext(ctx, query, barID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tickets := make([]models.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tickets, nil
}

// PayTicket marks an open ticket as paid
func (s *Storage) PayTicket(ctx context.Context, ticketID, paymentMethod string, paidAt time.Time) (*models.Ticket, error) {
	var paid *models.Ticket
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE tickets
			SET status = ?, payment_method = ?, paid_at = ?
			WHERE id = ? AND status = ?
		`
		result, err := tx.ExecContext(ctx, query,
			string(models.TicketStatusPaid),
			paymentMethod,
			paidAt.UTC(),
			ticketID,
			string(models.TicketStatusOpen),
		)
		if err != nil {
			return fmt.Errorf("failed to pay ticket: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		ticket, err := getTicket(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		// Тикет существует, но не был открыт
		if rows == 0 {
			return storage.ErrTicketAlreadyPaid
		}

		paid = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// queryer общий интерфейс *sql.DB и *sql.Tx для чтения
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func getTicket(ctx context.Context, q queryer, ticketID string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`

	ticket, err := scanTicket(q.QueryRowContext(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	var status string
	var paidAt sql.NullTime

	err := row.Scan(
		&ticket.ID,
		&ticket.BarID,
		&ticket.Number,
		&ticket.TableLabel,
		&ticket.ServerName,
		&ticket.Notes,
		&status,
		&ticket.PaymentMethod,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
		&paidAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Status = models.TicketStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		ticket.PaidAt = &t
	}
	return ticket, nil
}
