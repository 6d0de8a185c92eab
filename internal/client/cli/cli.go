// Package cli implements the barkeeper command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/barkeeper/internal/client/iocli"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/services"
	"github.com/iudanet/barkeeper/internal/client/state"
	"github.com/iudanet/barkeeper/internal/client/storage"
	syncpkg "github.com/iudanet/barkeeper/internal/client/sync"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/validation"
)

//go:generate moq -out auth_mock.go . Auth
//go:generate moq -out bars_mock.go . Bars
//go:generate moq -out pos_mock.go . POS
//go:generate moq -out mappings_mock.go . Mappings
//go:generate moq -out syncer_mock.go . Syncer

// PasswordEnv is the environment variable holding the account password.
const PasswordEnv = "BARKEEPER_PASSWORD"

// Output formats of status and queue listings.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Auth is the session provider.
type Auth interface {
	Register(ctx context.Context, email, password, displayName string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Resume(ctx context.Context, password string) (models.User, error)
	Logout(ctx context.Context) error
	StoredAccount(ctx context.Context) (*storage.SealedSession, error)
}

// Bars is the bar provider.
type Bars interface {
	Refresh(ctx context.Context) error
	Bars() []models.Bar
	CurrentBar() (models.Bar, bool)
	SwitchBar(ctx context.Context, id string) error
	CreateBar(ctx context.Context, in models.NewBar) (models.Bar, error)
	UpdateBar(ctx context.Context, id string, patch models.BarPatch) (models.Bar, error)
}

// POS is the provider of tickets, sales and the operation queue.
type POS interface {
	Refresh(ctx context.Context) error
	TicketList() []models.Ticket
	SaleList() []models.Sale
	LastSyncedAt() (time.Time, bool)
	NetworkStatus() state.NetworkStatus
	CreateTicket(ctx context.Context, in models.NewTicket) (models.Ticket, error)
	PayTicket(ctx context.Context, ticketID, method string) (models.Ticket, error)
	CreateSale(ctx context.Context, in models.NewSale) (models.Sale, error)
	Operations(ctx context.Context, statuses ...models.OperationStatus) ([]*models.PendingOperation, error)
	RetryOperation(ctx context.Context, id string) error
	DiscardOperation(ctx context.Context, id string) error
	QueueStats(ctx context.Context) (queue.Stats, error)
}

// Mappings is the server name mapping service.
type Mappings interface {
	ListMappings(ctx context.Context, barID string) (services.Snapshot[models.ServerMapping], error)
	GetUserIDForServerName(ctx context.Context, barID, serverName string) (string, error)
	UpsertMapping(ctx context.Context, barID, serverName, userID string) (models.ServerMapping, error)
	DeleteMapping(ctx context.Context, barID, serverName string) error
}

// Syncer replays the operation queue.
type Syncer interface {
	Drain(ctx context.Context) (syncpkg.Result, error)
}

// Deps are the client components a command works with.
type Deps struct {
	Auth     Auth
	Bars     Bars
	POS      POS
	Mappings Mappings
	Sync     Syncer
}

// Passwords are the non-interactive password sources.
type Passwords struct {
	FromFile string
	FromArgs string
}

// Globals are the persistent flags of the root command.
type Globals struct {
	ConfigPath string
	ServerURL  string
	DBPath     string
	LogLevel   string
	Output     string
	Passwords  Passwords
}

// Opener builds the client for one command invocation.
type Opener func(ctx context.Context, g Globals) (Deps, io.Closer, error)

// Cli runs barkeeper commands.
type Cli struct {
	io      iocli.IO
	open    Opener
	closer  io.Closer
	deps    Deps
	globals Globals
}

// New creates the CLI. The client is opened lazily before a command runs.
func New(stdio iocli.IO, open Opener) *Cli {
	return &Cli{
		io:   stdio,
		open: open,
	}
}

// Close releases the client opened for the command.
func (c *Cli) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// RootCommand builds the command tree.
func (c *Cli) RootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "barkeeper",
		Short:         "Barkeeper point-of-sale client",
		Long:          "Barkeeper keeps taking orders while the network is down and replays them once it is back.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.globals.ConfigPath, "config", "c", "", "config file path")
	flags.StringVar(&c.globals.ServerURL, "server", "", "server URL (overrides config)")
	flags.StringVar(&c.globals.DBPath, "db", "", "path to local database (overrides config)")
	flags.StringVar(&c.globals.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVarP(&c.globals.Output, "output", "o", OutputText, "output format for status and queue: text, yaml")
	flags.StringVar(&c.globals.Passwords.FromFile, "password-file", "", "path to file containing the password")
	flags.StringVar(&c.globals.Passwords.FromArgs, "password", "", "password (not recommended, use "+PasswordEnv+" or a file)")

	root.AddCommand(
		c.registerCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.statusCommand(),
		c.syncCommand(),
		c.barsCommand(),
		c.ticketsCommand(),
		c.mappingsCommand(),
		c.salesCommand(),
		c.queueCommand(),
	)
	return root
}

func (c *Cli) setup(ctx context.Context) error {
	switch c.globals.Output {
	case OutputText, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.globals.Output)
	}
	if c.closer != nil {
		return nil
	}

	deps, closer, err := c.open(ctx, c.globals)
	if err != nil {
		return err
	}
	c.deps = deps
	c.closer = closer
	return nil
}

// signIn открывает сохранённую сессию паролем для команд, которым нужен токен
func (c *Cli) signIn(ctx context.Context) (models.User, error) {
	password, err := c.password()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get password: %w", err)
	}

	user, err := c.deps.Auth.Resume(ctx, password)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return models.User{}, errors.New("not signed in, run 'barkeeper login' first")
		}
		return models.User{}, err
	}
	return user, nil
}

// password retrieves the password from the sources in priority order:
// the environment variable, the password file, the flag, an interactive prompt.
func (c *Cli) password() (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	passwords := c.globals.Passwords
	if passwords.FromFile != "" {
		content, err := os.ReadFile(passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	if passwords.FromArgs != "" {
		return passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	return password, nil
}

func (c *Cli) interactivePassword() bool {
	p := c.globals.Passwords
	return os.Getenv(PasswordEnv) == "" && p.FromFile == "" && p.FromArgs == ""
}

// currentBar loads bars and returns the selected one.
func (c *Cli) currentBar(ctx context.Context) (models.Bar, error) {
	if err := c.deps.Bars.Refresh(ctx); err != nil {
		return models.Bar{}, fmt.Errorf("failed to load bars: %w", err)
	}
	bar, ok := c.deps.Bars.CurrentBar()
	if !ok {
		return models.Bar{}, errors.New("no bar selected, run 'barkeeper bars switch <id>' first")
	}
	return bar, nil
}

// withBar signs in, loads the current bar and its tickets and sales.
func (c *Cli) withBar(ctx context.Context) (models.Bar, error) {
	if _, err := c.signIn(ctx); err != nil {
		return models.Bar{}, err
	}
	bar, err := c.currentBar(ctx)
	if err != nil {
		return models.Bar{}, err
	}
	if err := c.deps.POS.Refresh(ctx); err != nil {
		return models.Bar{}, fmt.Errorf("failed to load bar data: %w", err)
	}
	return bar, nil
}
