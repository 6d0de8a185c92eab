package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) mappingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Map server (waiter) names of the current bar to user accounts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List mappings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runMappingsList(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "set <server-name> <user-id>",
			Short: "Create or change a mapping",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runMappingsSet(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "delete <server-name>",
			Short: "Delete a mapping",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runMappingsDelete(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "resolve <server-name>",
			Short: "Show the user a server name resolves to",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runMappingsResolve(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (c *Cli) mappingsBar(ctx context.Context) (string, error) {
	if _, err := c.signIn(ctx); err != nil {
		return "", err
	}
	bar, err := c.currentBar(ctx)
	if err != nil {
		return "", err
	}
	return bar.ID, nil
}

func (c *Cli) runMappingsList(ctx context.Context) error {
	barID, err := c.mappingsBar(ctx)
	if err != nil {
		return err
	}

	snap, err := c.deps.Mappings.ListMappings(ctx, barID)
	if err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}
	if snap.FromCache {
		c.io.Printf("⚠️  Server unreachable, showing data synced %s\n", ago(snap.LastSyncedAt))
	}
	if len(snap.Records) == 0 {
		c.io.Println("No mappings.")
		return nil
	}
	for _, m := range snap.Records {
		c.io.Printf("%-20s -> %s\n", m.ServerName, m.UserID)
	}
	return nil
}

func (c *Cli) runMappingsSet(ctx context.Context, serverName, userID string) error {
	barID, err := c.mappingsBar(ctx)
	if err != nil {
		return err
	}

	m, err := c.deps.Mappings.UpsertMapping(ctx, barID, serverName, userID)
	if err != nil {
		return err
	}
	c.io.Printf("✓ %s -> %s\n", m.ServerName, m.UserID)
	return nil
}

func (c *Cli) runMappingsDelete(ctx context.Context, serverName string) error {
	barID, err := c.mappingsBar(ctx)
	if err != nil {
		return err
	}

	if err := c.deps.Mappings.DeleteMapping(ctx, barID, serverName); err != nil {
		return err
	}
	c.io.Printf("✓ Mapping for %s deleted\n", serverName)
	return nil
}

func (c *Cli) runMappingsResolve(ctx context.Context, serverName string) error {
	barID, err := c.mappingsBar(ctx)
	if err != nil {
		return err
	}

	userID, err := c.deps.Mappings.GetUserIDForServerName(ctx, barID, serverName)
	if err != nil {
		return err
	}
	if userID == "" {
		c.io.Printf("%s is not mapped to a user\n", serverName)
		return nil
	}
	c.io.Printf("%s -> %s\n", serverName, userID)
	return nil
}
