package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued operations to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context())
		},
	}
}

func (c *Cli) runSync(ctx context.Context) error {
	if _, err := c.signIn(ctx); err != nil {
		return err
	}

	if c.deps.POS.NetworkStatus().Blocked {
		c.io.Println("⚠️  Server unreachable, operations stay queued.")
		return nil
	}

	c.io.Println("Starting synchronization with server...")
	result, err := c.deps.Sync.Drain(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println("✓ Synchronization completed")
	c.io.Printf("Replayed: %d\n", result.Replayed)
	if result.Failed > 0 {
		c.io.Printf("Failed:   %d (see 'barkeeper queue list --failed')\n", result.Failed)
	}
	if result.Deferred > 0 {
		c.io.Printf("Deferred: %d (waiting for records created offline)\n", result.Deferred)
	}
	if result.Skipped > 0 {
		c.io.Printf("Skipped:  %d (behind a failed operation)\n", result.Skipped)
	}
	return nil
}
