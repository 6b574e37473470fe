// Package cmd contains all CLI commands for carectl
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/config"
	"github.com/carehub-project/carectl/internal/output"
	"github.com/carehub-project/carectl/internal/session"
	"github.com/carehub-project/carectl/internal/validate"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	cfg     *config.Config
	logger  *slog.Logger
	store   *session.Store
	client  *api.Client
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carectl",
	Short: "CareHub appointment booking CLI",
	Long: `carectl is a command-line client for the CareHub appointment booking
service. It signs you in, keeps your session on disk, and lets you browse
doctors, book and manage appointments, and submit reviews.

Example usage:
  carectl login --email you@example.com --password secret
  carectl doctors list --specialization cardiology
  carectl book --doctor <id> --slot <slotId> --reason "checkup"
  carectl appointments list --filter upcoming
  carectl dashboard`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle between rootCmd and initRuntime.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .carectl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL (overrides config)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

// initRuntime loads configuration and wires the session store and API client
func initRuntime() error {
	var err error

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:  "could not load configuration",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	if cfg.Logging.Level == "debug" || verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	if flag := rootCmd.PersistentFlags().Lookup("api-url"); flag != nil && flag.Changed {
		cfg.API.BaseURL = flag.Value.String()
	}

	store = session.NewStore(cfg.Session.CredentialsFile, logger)
	store.Restore()

	client = api.New(cfg.API.BaseURL, cfg.API.Timeout, store, logger,
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst))

	// The client signals, the store purges, the command layer tells the
	// user to sign in again. Keeps navigation out of the network layer.
	client.OnSessionInvalidated(store.Invalidate)

	logger.Debug("runtime initialized",
		"base_url", cfg.API.BaseURL,
		"credentials_file", cfg.Session.CredentialsFile,
		"authenticated", store.IsAuthenticated(),
	)

	return nil
}

// newPrinter builds a printer honoring the configured color setting
func newPrinter() *output.Printer {
	return output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode:    output.ColorAuto,
		ConfigColors: cfg.Output.Colors,
		Quiet:        quiet,
	})
}

// commandContext returns the context for a single command invocation
func commandContext(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

// requireSession fails fast when no user is signed in, and otherwise
// refreshes an access token that is about to lapse
func requireSession(ctx context.Context) error {
	if !store.IsAuthenticated() {
		return &output.CLIError{
			Summary:    "not signed in",
			Suggestion: "run 'carectl login' first",
			ExitCode:   output.ExitAuthError,
		}
	}
	if err := store.RefreshIfNeeded(ctx, client, cfg.Session.RefreshLeeway); err != nil {
		// A failed refresh is not fatal; the request itself will tell
		logger.Warn("token refresh failed", "error", err)
	}
	return nil
}

// asCLIError maps core errors onto structured CLI errors with exit codes
func asCLIError(err error) *output.CLIError {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	if api.IsUnauthorized(err) {
		return &output.CLIError{
			Summary:    "session expired or rejected",
			Detail:     "the backend rejected your credentials and the local session was cleared",
			Suggestion: "run 'carectl login' to sign in again",
			ExitCode:   output.ExitAuthError,
		}
	}

	if validate.IsValidation(err) {
		return &output.CLIError{
			Summary:  err.Error(),
			ExitCode: output.ExitUsageError,
		}
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &output.CLIError{
			Summary:  apiErr.Message,
			Detail:   fmt.Sprintf("backend responded with status %d", apiErr.Status),
			ExitCode: output.ExitAPIError,
		}
	}

	return &output.CLIError{
		Summary:  err.Error(),
		ExitCode: output.ExitGeneral,
	}
}

// run wraps a command body so every failure leaves through asCLIError
func run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return asCLIError(err)
		}
		return nil
	}
}

// parseRFC3339 parses a user-supplied timestamp flag
func parseRFC3339(flag, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &output.CLIError{
			Summary:  fmt.Sprintf("invalid --%s: %q is not an RFC 3339 timestamp (e.g. 2025-06-01T10:00:00Z)", flag, value),
			ExitCode: output.ExitUsageError,
		}
	}
	return t, nil
}
