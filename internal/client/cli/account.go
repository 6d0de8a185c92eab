package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) registerCommand() *cobra.Command {
	var email, displayName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRegister(cmd.Context(), email, displayName)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	return cmd
}

func (c *Cli) runRegister(ctx context.Context, email, displayName string) error {
	c.io.Println("=== Registration ===")

	var err error
	if email == "" {
		if email, err = c.io.ReadInput("Email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}
	if displayName == "" {
		if displayName, err = c.io.ReadInput("Display name: "); err != nil {
			return fmt.Errorf("failed to read display name: %w", err)
		}
	}

	password, err := c.password()
	if err != nil {
		return fmt.Errorf("failed to get password: %w", err)
	}
	// Подтверждение нужно только при вводе с клавиатуры
	if c.interactivePassword() {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm != password {
			return errors.New("passwords do not match")
		}
	}

	user, err := c.deps.Auth.Register(ctx, email, password, displayName)
	if err != nil {
		return err
	}

	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Println("Your session is saved on this device and can be unlocked offline with the same password.")
	return nil
}

func (c *Cli) loginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in, offline with the stored session when the server is unreachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (c *Cli) runLogin(ctx context.Context, email string) error {
	c.io.Println("=== Login ===")

	if email == "" {
		var err error
		if email, err = c.io.ReadInput("Email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}
	password, err := c.password()
	if err != nil {
		return fmt.Errorf("failed to get password: %w", err)
	}

	user, err := c.deps.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("Signed in as %s (%s)\n", user.DisplayName, user.Email)
	return nil
}

func (c *Cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored session and cached data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.deps.Auth.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session and cached data have been deleted.")
	return nil
}
