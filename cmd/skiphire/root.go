package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/csheth/skiphire/internal/catalog"
	"github.com/csheth/skiphire/internal/config"
	"github.com/csheth/skiphire/internal/logging"
	"github.com/csheth/skiphire/internal/metrics"
	"github.com/csheth/skiphire/internal/tui"
	"github.com/csheth/skiphire/internal/wizard"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skiphire",
		Short: "Choose a skip size for your booking",
		Long: `skiphire runs the "Select Skip" step of the skip hire booking flow in
the terminal. It loads the skip catalog from the configured source, lets you
page through the sizes and pick one, then hands the choice on to the permit
check.

Configuration is read from $XDG_CONFIG_HOME/skiphire/config.toml, a .env file
in the working directory and SKIPHIRE_* environment variables. Flags win over
all of them.`,
		SilenceUsage: true,
		RunE:         runWizard,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default $XDG_CONFIG_HOME/skiphire/config.toml)")
	flags.String("source", "", "catalog source: mock, file, http or postgres")
	flags.String("catalog-path", "", "catalog JSON file for the file source")
	flags.String("url", "", "catalog endpoint for the http source")
	flags.String("dsn", "", "connection string for the postgres source")
	flags.Duration("delay", 0, "simulated latency of the mock source")
	flags.Int("fail-first", 0, "number of mock fetches that fail before one succeeds")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	cmd.Flags().Int("page-size", 0, "skips shown per page")
	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	cmd.Flags().Bool("no-alt-screen", false, "disable the alternate screen buffer")

	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig layers flags over the file, .env and environment configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Catalog.Source, _ = flags.GetString("source")
	}
	if flags.Changed("catalog-path") {
		cfg.Catalog.Path, _ = flags.GetString("catalog-path")
	}
	if flags.Changed("url") {
		cfg.Catalog.URL, _ = flags.GetString("url")
	}
	if flags.Changed("dsn") {
		cfg.Catalog.DSN, _ = flags.GetString("dsn")
	}
	if flags.Changed("delay") {
		cfg.Catalog.Delay, _ = flags.GetDuration("delay")
	}
	if flags.Changed("fail-first") {
		cfg.Catalog.FailFirst, _ = flags.GetInt("fail-first")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("page-size") {
		cfg.UI.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("no-alt-screen") {
		noAlt, _ := flags.GetBool("no-alt-screen")
		cfg.UI.AltScreen = !noAlt
	}
	return cfg, cfg.Validate()
}

// setupLogger installs the global logger that logging.NewLogger derives
// component loggers from.
func setupLogger(cfg config.Config) func() error {
	logCfg := logging.DefaultConfig()
	if cfg.Log.Level != "" {
		logCfg.Level = logging.LogLevel(cfg.Log.Level)
	}
	if cfg.Log.File != "" {
		logCfg.File = cfg.Log.File
	}
	logCfg.Pretty = cfg.Log.Pretty
	_, closeLog := logging.Setup(logCfg)
	return closeLog
}

func runWizard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog := setupLogger(cfg)
	defer func() { _ = closeLog() }()
	logger := logging.NewLogger("cli")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, logging.NewLogger("metrics")); err != nil {
				logger.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	src, err := catalog.NewSource(ctx, cfg.Catalog.SourceConfig())
	if err != nil {
		return fmt.Errorf("open catalog source: %w", err)
	}
	defer func() {
		if err := catalog.Close(src); err != nil {
			logger.Warn().Err(err).Msg("close catalog source")
		}
	}()

	sessionID := uuid.NewString()
	sessionLogger := logger.With().Str("session", sessionID).Logger()
	tuiLogger := logging.NewLogger("tui").With().Str("session", sessionID).Logger()
	catalogLogger := logging.NewLogger("catalog").With().Str("session", sessionID).Logger()
	sessionLogger.Info().Str("source", src.Name()).Msg("starting skip selection")

	// The mock source simulates its own latency; only real backends get a deadline.
	timeout := cfg.Catalog.Timeout
	if src.Name() == catalog.KindMock {
		timeout = 0
	}

	program := tea.NewProgram(tui.New(tui.Config{
		Source:         src,
		PageSize:       cfg.UI.PageSize,
		CurrencySymbol: cfg.UI.CurrencySymbol,
		FetchTimeout:   timeout,
		SessionID:      sessionID,
		Logger:         &tuiLogger,
		CatalogLogger:  &catalogLogger,
	}), programOptions(cfg.UI)...)

	started := time.Now()
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	result := tui.Outcome(final)
	sessionLogger.Info().Str("action", string(result.Action)).Dur("duration", time.Since(started)).Msg("skip selection finished")
	printOutcome(cmd.OutOrStdout(), result, cfg.UI.CurrencySymbol)
	return nil
}

func printOutcome(w io.Writer, result tui.Result, symbol string) {
	switch result.Action {
	case wizard.ActionContinue:
		fmt.Fprintf(w, "Selected skip: %s\n", result.Selected.ID)
		fmt.Fprintf(w, "%s, %s for %s. Next: %s.\n",
			result.Selected.Name,
			catalog.FormatPrice(symbol, result.Selected.Price),
			result.Selected.HirePeriod,
			wizard.NextStep().Name,
		)
	case wizard.ActionBack:
		fmt.Fprintf(w, "Returning to %s.\n", wizard.PreviousStep().Name)
		if result.Selected != nil {
			fmt.Fprintf(w, "Kept selection: %s\n", result.Selected.ID)
		}
	default:
		fmt.Fprintln(w, "Skip selection cancelled.")
	}
}

// programOptions enables mouse reporting so the wheel scrolls the card list.
func programOptions(ui config.UIConfig) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if ui.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return opts
}
