package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/barkeeper/internal/models"
)

type operationRow struct {
	CreatedAt time.Time `yaml:"created_at"`
	ID        string    `yaml:"id"`
	Type      string    `yaml:"type"`
	EntityID  string    `yaml:"entity_id"`
	Status    string    `yaml:"status"`
	LastError string    `yaml:"last_error,omitempty"`
	Attempts  int       `yaml:"attempts"`
}

func (c *Cli) queueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect operations waiting for the server",
	}

	var failedOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List queued operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQueueList(cmd.Context(), failedOnly)
		},
	}
	list.Flags().BoolVar(&failedOnly, "failed", false, "only failed operations")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "retry <id>",
			Short: "Queue a failed operation again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runQueueRetry(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "discard <id>",
			Short: "Drop a failed operation and its local effect",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runQueueDiscard(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (c *Cli) runQueueList(ctx context.Context, failedOnly bool) error {
	var statuses []models.OperationStatus
	if failedOnly {
		statuses = append(statuses, models.StatusFailed)
	} else {
		statuses = append(statuses, models.StatusPending, models.StatusSyncing, models.StatusFailed)
	}

	ops, err := c.deps.POS.Operations(ctx, statuses...)
	if err != nil {
		return err
	}

	rows := make([]operationRow, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, operationRow{
			CreatedAt: op.CreatedAt,
			ID:        op.ID,
			Type:      string(op.Type),
			EntityID:  op.EntityID,
			Status:    string(op.Status),
			LastError: op.LastError,
			Attempts:  op.Attempts,
		})
	}

	if c.yamlOutput() {
		return c.printYAML(rows)
	}
	if len(rows) == 0 {
		c.io.Println("✓ Queue is empty")
		return nil
	}
	for _, r := range rows {
		c.io.Printf("%s  %-22s %-8s attempts=%d  %s\n", r.ID, r.Type, r.Status, r.Attempts, ago(r.CreatedAt))
		if r.LastError != "" {
			c.io.Printf("    error: %s\n", r.LastError)
		}
	}
	return nil
}

func (c *Cli) runQueueRetry(ctx context.Context, id string) error {
	if err := c.deps.POS.RetryOperation(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ Operation %s queued again\n", id)
	c.io.Println("Run 'barkeeper sync' to send it now.")
	return nil
}

// runQueueDiscard входит в аккаунт, чтобы после удаления перечитать данные бара
func (c *Cli) runQueueDiscard(ctx context.Context, id string) error {
	if _, err := c.signIn(ctx); err != nil {
		return err
	}
	if err := c.deps.Bars.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	if err := c.deps.POS.DiscardOperation(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ Operation %s discarded\n", id)
	return nil
}
