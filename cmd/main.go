package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/api"
	"github.com/Taishi66/folio-tui/internal/cache"
	"github.com/Taishi66/folio-tui/internal/config"
	"github.com/Taishi66/folio-tui/internal/logging"
	"github.com/Taishi66/folio-tui/internal/report"
	"github.com/Taishi66/folio-tui/internal/tui"
)

var version = "dev"

var (
	configPath string
	apiURL     string
	devMode    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Terminal client for the PortfolioPulse API",
	Long:          "folio browses projects, blog posts and stats of a PortfolioPulse site from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/folio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL, overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "development mode: error details and debug logs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd, projectsCmd, projectCmd, prefetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// services is everything a command needs, built from flags and config.
type services struct {
	cfg      *config.AppConfig
	path     string
	logger   *zap.Logger
	gateway  *cache.CachedGateway
	reporter *report.Reporter
}

func (s *services) Close() {
	s.reporter.Close()
	_ = s.logger.Sync()
}

func loadConfig() (*config.AppConfig, string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	var (
		cfg *config.AppConfig
		err error
	)
	if path == "" {
		cfg, err = config.LoadConfig()
	} else {
		cfg, err = config.LoadConfigFrom(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func applyFlags(cfg *config.AppConfig) {
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if devMode {
		cfg.Env = config.EnvDevelopment
	}
}

// setup wires config, logging, the API client, the cache and the error
// reporter. toFile keeps log output off the terminal.
func setup(toFile bool) (*services, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.FromConfig(cfg, toFile, verbose))
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API, logger.Named("api"))
	gw := cache.NewCachedGateway(client, cfg.Cache)

	var reporter *report.Reporter
	if !cfg.IsDev() && cfg.Report.Enabled {
		reporter = report.New(cfg.ReportEndpoint(), cfg.Report.BuildVersion, logger.Named("report"))
	}

	logger.Debug("folio starting",
		zap.String("version", version),
		zap.String("env", cfg.Env),
		zap.String("api", cfg.API.BaseURL),
		zap.String("config", path),
	)

	return &services{cfg: cfg, path: path, logger: logger, gateway: gw, reporter: reporter}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := setup(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	m := tui.NewModel(svc.gateway, svc.cfg, svc.logger.Named("tui"), svc.reporter)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if svc.path != "" {
		go func() {
			err := config.Watch(ctx, svc.path, svc.logger, func(next *config.AppConfig) {
				applyFlags(next)
				p.Send(tui.ConfigReloadedMsg{Config: next})
			})
			if err != nil {
				svc.logger.Warn("config watch stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
