package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/config"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/network"
	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/service"
	"github.com/s0up4200/pokedex/store"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	client   *pokeapi.Client
	offline  store.Store
	monitor  *network.Monitor
	registry *service.Registry
	filters  *filter.Manager
	tracker  *service.Tracker

	// Command flags
	forceOffline bool

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Query the PokeAPI with retries, batching, caching and filters",
	Long: `pokedex is a CLI for the PokeAPI. It fetches any resource family
(pokemon, ability, berry, move, item, ...) with input validation, automatic
retries of transient failures, chunked batch fetching, a response cache and
an optional offline store, and filters samples with expressions such as
'type:fire and stat:speed>100'.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records the build metadata reported by the version command.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&forceOffline, "offline", false, "serve only cached and stored responses")
}

// loadConfig loads the configuration and sets up the logger
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)
	return nil
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd, args); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Open the offline store, if any
	var err error
	offline, err = store.Open(ctx, cfg.StoreConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to open offline store: %w", err)
	}

	opts := cfg.ClientOptions()
	if offline != nil {
		opts = append(opts, pokeapi.WithOfflineStore(offline))
	}
	client, err = pokeapi.NewClient(logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create PokeAPI client: %w", err)
	}

	// Connectivity monitor
	var prober network.Prober
	if cfg.Network.ProbeURL != "" {
		prober = network.NewHTTPProber(cfg.Network.ProbeURL, cfg.Network.ProbeTimeout)
	}
	monitor = network.NewMonitor(prober, logger)
	switch {
	case forceOffline:
		monitor.Notify(false)
	case prober != nil:
		monitor.CheckConnection(ctx)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	registry = service.NewRegistry(client, monitor, cfg.ServiceConfig(), logger, service.WithFilterManager(filters))
	tracker = service.NewTracker()

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Str("store", cfg.Store.Backend).
		Bool("online", monitor.IsOnline()).
		Msg("Initialized")

	return nil
}

// closeApp releases the offline store and the filter workers
func closeApp(cmd *cobra.Command, args []string) error {
	if filters != nil {
		if err := filters.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Failed to stop filter workers")
		}
	}
	if offline != nil {
		if err := offline.Close(); err != nil {
			return fmt.Errorf("failed to close offline store: %w", err)
		}
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format, without colour when not writing to a terminal
	tty := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
