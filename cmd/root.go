// Package cmd wires configuration, storage, and the dispatcher behind the ac
// command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jvanvugt/auto-cli/internal/builtin"
	"github.com/jvanvugt/auto-cli/internal/config"
	"github.com/jvanvugt/auto-cli/internal/dispatch"
	"github.com/jvanvugt/auto-cli/internal/domain/app"
	"github.com/jvanvugt/auto-cli/internal/flags"
	"github.com/jvanvugt/auto-cli/internal/infrastructure/sqlite"
	"github.com/jvanvugt/auto-cli/internal/log"
	"github.com/jvanvugt/auto-cli/internal/paths"
	"github.com/jvanvugt/auto-cli/internal/pubsub"
	"github.com/jvanvugt/auto-cli/internal/resolve"
	"github.com/jvanvugt/auto-cli/internal/tracing"
)

var (
	version = "dev"
	cfg     config.Config
)

// Flags after the app name belong to the dispatched command, so cobra's own
// flag parsing stays off and the whole argv goes to the dispatcher verbatim.
var rootCmd = &cobra.Command{
	Use:                "ac <app> [command] [flags]",
	Short:              "Run commands exposed by registered apps",
	Long:               `ac dispatches command-line invocations to functions registered in its app registry. Register an app with 'ac cli register_app', then run its commands as 'ac <app> <command> [--flag value]...'.`,
	Version:            version,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runDispatch,
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	defaults := config.Default()
	viper.SetDefault("registry_path", defaults.RegistryPath)
	viper.SetDefault("log_path", defaults.LogPath)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	viper.SetEnvPrefix("AC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config lookup order:
	// 1. .ac/config.yaml (current directory)
	// 2. ~/.config/ac/config.yaml (user config)
	if _, err := os.Stat(filepath.Join(".ac", "config.yaml")); err == nil {
		viper.SetConfigFile(filepath.Join(".ac", "config.yaml"))
	} else if dir := config.Dir(); dir != "" {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config anywhere: seed the user config and continue on defaults.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if dir := config.Dir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0, args[0] == "--help", args[0] == "-h", args[0] == "help":
		return cmd.Help()
	case args[0] == "--version", args[0] == "-v":
		fmt.Fprintf(cmd.OutOrStdout(), "ac version %s\n", version)
		return nil
	}
	if strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("unknown flag %q, expected an app name", args[0])
	}

	cfg.RegistryPath = paths.ExpandHome(cfg.RegistryPath)
	cfg.LogPath = paths.ExpandHome(cfg.LogPath)
	// AC_PATH extends the configured manifest search path, colon-separated
	// like PATH.
	if acPath := os.Getenv("AC_PATH"); acPath != "" {
		cfg.SearchPath = append(cfg.SearchPath, filepath.SplitList(acPath)...)
	}
	cfg.SearchPath = paths.ExpandHomeAll(cfg.SearchPath)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		if cleanup, err := log.Init(cfg.LogPath); err == nil {
			log.SetEnabled(true)
			defer cleanup()
		}
	}

	db, err := sqlite.NewDB(cfg.RegistryPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	repo := sqlite.NewAppRepository(db)

	tracer, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() { _ = tracer.Shutdown(cmd.Context()) }()

	featureFlags := flags.New(cfg.Flags)
	loader := resolve.Default()

	// Functions taking a context see cancellation on Ctrl-C.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broker := pubsub.NewBroker[*app.App]()
	defer broker.Close()
	if cfg.Debug {
		// Registry mutations show up in the debug log as lifecycle events.
		events := broker.Subscribe(ctx)
		go func() {
			for e := range events {
				log.Info(log.CatStore, "Registry event", "event", string(e.Type), "app", e.Payload.Name())
			}
		}()
	}

	svc := builtin.NewService(repo, resolve.NewResolver(loader), featureFlags, broker)
	if err := svc.Register(loader); err != nil && !errors.Is(err, resolve.ErrDuplicate) {
		return err
	}

	dispatcher := dispatch.NewDispatcher(repo, loader, cfg.SearchPath, cmd.OutOrStdout(), featureFlags, tracer)

	appName := args[0]
	if err := dispatcher.Dispatch(ctx, appName, args[1:]); err != nil {
		var notFound *app.NotFoundError
		if errors.As(err, &notFound) {
			log.Warn(log.CatDispatch, "Unknown app", "name", appName)
		}
		return err
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
