package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/barkeeper/internal/models"
)

func (c *Cli) salesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Record and list sales of the current bar",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List sales",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runSalesList(cmd.Context())
			},
		},
		c.salesCreateCommand(),
	)
	return cmd
}

func (c *Cli) runSalesList(ctx context.Context) error {
	bar, err := c.withBar(ctx)
	if err != nil {
		return err
	}

	c.printFreshness()
	sales := c.deps.POS.SaleList()
	if len(sales) == 0 {
		c.io.Printf("No sales in %s.\n", bar.Name)
		return nil
	}

	var total int64
	for _, s := range sales {
		total += s.TotalCents
		c.io.Printf("%s  %10s  %-6s sold_by=%s%s\n",
			s.ID, formatCents(s.TotalCents), s.PaymentMethod, s.SoldBy, pendingMark(s.Unconfirmed))
	}
	c.io.Printf("Total: %s in %d sale(s)\n", formatCents(total), len(sales))
	return nil
}

func (c *Cli) salesCreateCommand() *cobra.Command {
	var in models.NewSale
	var items []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a sale",
		Example: `  barkeeper sales create --item "Lager:2:5.50" --item "Fries:1:4" --method card
  barkeeper sales create --ticket <ticket-id> --server Anna --item "Espresso:1:2.20"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseItems(items)
			if err != nil {
				return err
			}
			in.Items = parsed
			return c.runSalesCreate(cmd.Context(), in)
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "item as name:quantity:price, repeatable")
	cmd.Flags().StringVar(&in.TicketID, "ticket", "", "ticket the sale belongs to")
	cmd.Flags().StringVar(&in.ServerName, "server", "", "server (waiter) name, must be mapped to a user")
	cmd.Flags().StringVar(&in.PaymentMethod, "method", "cash", "payment method")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func (c *Cli) runSalesCreate(ctx context.Context, in models.NewSale) error {
	if _, err := c.withBar(ctx); err != nil {
		return err
	}

	sale, err := c.deps.POS.CreateSale(ctx, in)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Sale recorded: %s  %s%s\n", sale.ID, formatCents(sale.TotalCents), pendingMark(sale.Unconfirmed))
	return nil
}

// parseItems разбирает позиции вида name:quantity:price
func parseItems(raw []string) ([]models.SaleItem, error) {
	items := make([]models.SaleItem, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, ":")
		if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid item %q, expected name:quantity:price", r)
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in item %q", r)
		}
		price, err := parseCents(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid price in item %q: %w", r, err)
		}

		name := strings.TrimSpace(parts[0])
		items = append(items, models.SaleItem{
			ProductID:      strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Name:           name,
			Quantity:       qty,
			UnitPriceCents: price,
		})
	}
	return items, nil
}
