package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/state"
	"github.com/iudanet/barkeeper/internal/client/storage"
)

type accountStatus struct {
	ExpiresAt   time.Time `yaml:"expires_at"`
	UserID      string    `yaml:"user_id"`
	Email       string    `yaml:"email"`
	DisplayName string    `yaml:"display_name"`
	Role        string    `yaml:"role"`
	Expired     bool      `yaml:"expired"`
}

type statusReport struct {
	Account *accountStatus      `yaml:"account,omitempty"`
	Network state.NetworkStatus `yaml:"network"`
	Queue   queue.Stats         `yaml:"queue"`
}

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored account, connectivity and pending operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	report := statusReport{Network: c.deps.POS.NetworkStatus()}

	// Статус не требует пароля: данные аккаунта хранятся открыто рядом с запечатанной сессией
	stored, err := c.deps.Auth.StoredAccount(ctx)
	switch {
	case err == nil:
		expiresAt := time.Unix(stored.ExpiresAt, 0)
		report.Account = &accountStatus{
			ExpiresAt:   expiresAt,
			UserID:      stored.UserID,
			Email:       stored.Email,
			DisplayName: stored.DisplayName,
			Role:        stored.Role,
			Expired:     stored.ExpiresAt > 0 && time.Now().After(expiresAt),
		}
	case errors.Is(err, storage.ErrSessionNotFound):
	default:
		return fmt.Errorf("failed to read stored session: %w", err)
	}

	if report.Queue, err = c.deps.POS.QueueStats(ctx); err != nil {
		return fmt.Errorf("failed to count queued operations: %w", err)
	}

	if c.yamlOutput() {
		return c.printYAML(report)
	}
	c.printStatus(report)
	return nil
}

func (c *Cli) printStatus(report statusReport) {
	c.io.Println("=== Status ===")

	if report.Account == nil {
		c.io.Println("Account: not signed in")
		c.io.Println("Run 'barkeeper login' to authenticate.")
	} else {
		a := report.Account
		c.io.Printf("Account: %s (%s, %s)\n", a.Email, a.DisplayName, a.Role)
		if a.Expired {
			c.io.Println("Token: expired, it is renewed on the next command while online")
		} else {
			c.io.Printf("Token expires: %s\n", ago(a.ExpiresAt))
		}
	}

	c.io.Printf("Network: %s\n", report.Network.State)
	if report.Network.Banner {
		c.io.Println("⚠️  Working offline. Changes are queued and sent once the connection is back.")
	}

	q := report.Queue
	if q.Pending+q.Syncing+q.Failed == 0 {
		c.io.Println("✓ All changes synchronized with server")
		return
	}
	c.io.Printf("Queued: %d pending, %d syncing, %d failed\n", q.Pending, q.Syncing, q.Failed)
	if q.Failed > 0 {
		c.io.Println("Run 'barkeeper queue list --failed' to review failed operations.")
	} else {
		c.io.Println("Run 'barkeeper sync' to synchronize with server.")
	}
}
