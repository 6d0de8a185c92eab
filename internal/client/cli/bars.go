package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/barkeeper/internal/models"
)

func (c *Cli) barsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Manage bars",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List bars",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runBarsList(cmd.Context())
			},
		},
		c.barsCreateCommand(),
		c.barsUpdateCommand(),
		&cobra.Command{
			Use:   "switch <id>",
			Short: "Select the bar other commands work with",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runBarsSwitch(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (c *Cli) runBarsList(ctx context.Context) error {
	if _, err := c.signIn(ctx); err != nil {
		return err
	}
	if err := c.deps.Bars.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	bars := c.deps.Bars.Bars()
	if len(bars) == 0 {
		c.io.Println("No bars yet. Create one with 'barkeeper bars create --name <name>'.")
		return nil
	}

	current, _ := c.deps.Bars.CurrentBar()
	for _, bar := range bars {
		marker := " "
		if bar.ID == current.ID {
			marker = "*"
		}
		status := ""
		if !bar.IsActive {
			status = " [inactive]"
		}
		c.io.Printf("%s %s  %s%s%s\n", marker, bar.ID, bar.Name, status, pendingMark(bar.Unconfirmed))
	}
	return nil
}

func (c *Cli) barsCreateCommand() *cobra.Command {
	var in models.NewBar

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a bar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBarsCreate(cmd.Context(), in)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "bar name")
	cmd.Flags().StringVar(&in.Address, "address", "", "address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *Cli) runBarsCreate(ctx context.Context, in models.NewBar) error {
	if _, err := c.signIn(ctx); err != nil {
		return err
	}
	if err := c.deps.Bars.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	bar, err := c.deps.Bars.CreateBar(ctx, in)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Bar created: %s  %s%s\n", bar.ID, bar.Name, pendingMark(bar.Unconfirmed))
	return nil
}

func (c *Cli) barsUpdateCommand() *cobra.Command {
	var name, address, phone string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change bar details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// В патч попадают только явно переданные флаги
			var patch models.BarPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = models.StringPtr(name)
			}
			if flags.Changed("address") {
				patch.Address = models.StringPtr(address)
			}
			if flags.Changed("phone") {
				patch.Phone = models.StringPtr(phone)
			}
			if flags.Changed("active") {
				patch.IsActive = models.BoolPtr(active)
			}
			return c.runBarsUpdate(cmd.Context(), args[0], patch)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "bar name")
	cmd.Flags().StringVar(&address, "address", "", "address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone")
	cmd.Flags().BoolVar(&active, "active", true, "whether the bar is active")
	return cmd
}

func (c *Cli) runBarsUpdate(ctx context.Context, id string, patch models.BarPatch) error {
	if patch.IsEmpty() {
		return errors.New("nothing to update, pass at least one of --name, --address, --phone, --active")
	}
	if _, err := c.signIn(ctx); err != nil {
		return err
	}
	if err := c.deps.Bars.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	bar, err := c.deps.Bars.UpdateBar(ctx, id, patch)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Bar updated: %s  %s%s\n", bar.ID, bar.Name, pendingMark(bar.Unconfirmed))
	return nil
}

func (c *Cli) runBarsSwitch(ctx context.Context, id string) error {
	if _, err := c.signIn(ctx); err != nil {
		return err
	}
	if err := c.deps.Bars.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load bars: %w", err)
	}

	if err := c.deps.Bars.SwitchBar(ctx, id); err != nil {
		return err
	}
	bar, _ := c.deps.Bars.CurrentBar()
	c.io.Printf("✓ Current bar: %s\n", bar.Name)
	return nil
}
