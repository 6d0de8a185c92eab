package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/barkeeper/internal/models"
)

func (c *Cli) ticketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Open and pay tickets of the current bar",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tickets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runTicketsList(cmd.Context())
			},
		},
		c.ticketsCreateCommand(),
		c.ticketsPayCommand(),
	)
	return cmd
}

func (c *Cli) runTicketsList(ctx context.Context) error {
	bar, err := c.withBar(ctx)
	if err != nil {
		return err
	}

	c.printFreshness()
	tickets := c.deps.POS.TicketList()
	if len(tickets) == 0 {
		c.io.Printf("No tickets in %s.\n", bar.Name)
		return nil
	}
	for _, t := range tickets {
		number := "-"
		if t.Number > 0 {
			number = fmt.Sprintf("#%d", t.Number)
		}
		c.io.Printf("%-5s %s  %-6s table=%s server=%s%s\n",
			number, t.ID, t.Status, t.TableLabel, t.ServerName, pendingMark(t.Unconfirmed))
	}
	return nil
}

func (c *Cli) ticketsCreateCommand() *cobra.Command {
	var in models.NewTicket

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTicketsCreate(cmd.Context(), in)
		},
	}
	cmd.Flags().StringVar(&in.TableLabel, "table", "", "table label")
	cmd.Flags().StringVar(&in.ServerName, "server", "", "server (waiter) name")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes")
	return cmd
}

func (c *Cli) runTicketsCreate(ctx context.Context, in models.NewTicket) error {
	if _, err := c.withBar(ctx); err != nil {
		return err
	}

	ticket, err := c.deps.POS.CreateTicket(ctx, in)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Ticket opened: %s%s\n", ticket.ID, pendingMark(ticket.Unconfirmed))
	return nil
}

func (c *Cli) ticketsPayCommand() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a ticket paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTicketsPay(cmd.Context(), args[0], method)
		},
	}
	cmd.Flags().StringVar(&method, "method", "cash", "payment method")
	return cmd
}

func (c *Cli) runTicketsPay(ctx context.Context, id, method string) error {
	if _, err := c.withBar(ctx); err != nil {
		return err
	}

	ticket, err := c.deps.POS.PayTicket(ctx, id, method)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Ticket paid: %s (%s)%s\n", ticket.ID, ticket.PaymentMethod, pendingMark(ticket.Unconfirmed))
	return nil
}

// printFreshness предупреждает, что сервер недоступен и показан кэш
func (c *Cli) printFreshness() {
	synced, fromCache := c.deps.POS.LastSyncedAt()
	if !fromCache {
		return
	}
	c.io.Printf("⚠️  Server unreachable, showing data synced %s\n", ago(synced))
}
