package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insightiq/backend"
	"insightiq/config"
	"insightiq/overview"
	"insightiq/workspace"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "insightiq",
	Short: "InsightIQ analytics dashboard",
	Long: `InsightIQ turns natural-language questions about uploaded CSV datasets
into charts, tables and explanations.

Without a subcommand the dashboard server is started.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().String("backend-url", "", "analytics backend base URL (overrides BACKEND_URL)")
	rootCmd.PersistentFlags().Bool("demo", false, "answer queries from built-in demo data")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, askCmd, datasetsCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "InsightIQ %s (commit %s, built %s)\n", version, commit, buildDate)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and config file, then applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend-url") {
		cfg.BackendURL, _ = flags.GetString("backend-url")
	}
	if demo, _ := flags.GetBool("demo"); demo {
		cfg.BackendURL = ""
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}
	return cfg, nil
}

// newBackend returns nil in demo mode.
func newBackend(cfg config.Config, log *zap.Logger, observer backend.Observer) *backend.Client {
	if cfg.DemoMode() {
		return nil
	}
	opts := []backend.Option{backend.WithLogger(log), backend.WithTimeout(cfg.BackendTimeout)}
	if observer != nil {
		opts = append(opts, backend.WithObserver(observer))
	}
	return backend.New(cfg.BackendURL, opts...)
}

// workspaceOptions builds the options shared by the server and the CLI.
func workspaceOptions(cfg config.Config, id string, client *backend.Client, log *zap.Logger) workspace.Options {
	opts := workspace.Options{
		ID:           id,
		Demo:         overview.NewDemo(cfg.DemoDelay),
		Logger:       log,
		HistoryLimit: cfg.HistoryLimit,
	}
	if client != nil {
		opts.Backend = client
	}
	return opts
}
