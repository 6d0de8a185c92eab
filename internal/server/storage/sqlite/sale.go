package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/barkeeper/internal/models"
)

// CreateSale stores the sale and its items in one transaction
func (s *Storage) CreateSale(ctx context.Context, sale *models.Sale) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO sales (id, bar_id, ticket_id, payment_method, server_name, sold_by, created_by, total_cents, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		var ticketID sql.NullString
		if sale.TicketID != "" {
			ticketID = sql.NullString{String: sale.TicketID, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, query,
			sale.ID,
			sale.BarID,
			ticketID,
			sale.PaymentMethod,
			sale.ServerName,
			sale.SoldBy,
			sale.CreatedBy,
			sale.TotalCents,
			sale.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		item := `
			INSERT INTO sale_items (sale_id, position, product_id, name, quantity, unit_price_cents)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		for i, it := range sale.Items {
			if _, err := tx.ExecContext(ctx, item, sale.ID, i, it.ProductID, it.Name, it.Quantity, it.UnitPriceCents); err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}
		}
		return nil
	})
}

// ListSales returns sales of bar with items, newest first
func (s *Storage) ListSales(ctx context.Context, barID string) ([]models.Sale, error) {
	query := `
		SELECT id, bar_id, ticket_id, payment_method, server_name, sold_by, created_by, total_cents, created_at
		FROM sales
		WHERE bar_id = ?
		ORDER BY created_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query, barID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	sales := make([]models.Sale, 0)
	index := make(map[string]int)
	for rows.Next() {
		var sale models.Sale
		var ticketID sql.NullString
		if err := rows.Scan(
			&sale.ID,
			&sale.BarID,
			&ticketID,
			&sale.PaymentMethod,
			&sale.ServerName,
			&sale.SoldBy,
			&sale.CreatedBy,
			&sale.TotalCents,
			&sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sale.TicketID = ticketID.String
		sale.Items = []models.SaleItem{}
		index[sale.ID] = len(sales)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	// Соединение одно, поэтому позиции читаем после закрытия курсора продаж
	_ = rows.Close()

	if len(sales) == 0 {
		return sales, nil
	}

	itemsQuery := `
		SELECT i.sale_id, i.product_id, i.name, i.quantity, i.unit_price_cents
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.bar_id = ?
		ORDER BY i.sale_id, i.position
	`
	itemRows, err := s.db.QueryContext(ctx, itemsQuery, barID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer func() {
		_ = itemRows.Close()
	}()

	for itemRows.Next() {
		var saleID string
		var item models.SaleItem
		if err := itemRows.Scan(&saleID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		if i, ok := index[saleID]; ok {
			sales[i].Items = append(sales[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sales, nil
}
