package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arachnid-dev/arachne/internal/config"
	"github.com/arachnid-dev/arachne/internal/crawler"
	"github.com/arachnid-dev/arachne/internal/log"
	"github.com/arachnid-dev/arachne/internal/model"
	"github.com/arachnid-dev/arachne/internal/report"
	"github.com/arachnid-dev/arachne/internal/store"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url...]",
		Short: "Crawl one or more sites breadth-first",
		Long: `Crawl walks sites breadth-first from the given seed URLs.

It deduplicates pages, honors robots.txt, spaces requests to the same
host, and bounds the crawl by depth and page count. The pages found are
reported as text, JSON, or Markdown.

Examples:
  # Crawl a site with default limits
  arachne crawl https://example.com

  # Crawl two sites, two levels deep, at most 50 pages
  arachne crawl --depth 2 --max-pages 50 https://a.test https://b.test

  # Output a JSON report to a file
  arachne crawl --json --output report.json https://example.com

  # Persist pages to a SQLite database
  arachne crawl --save https://example.com

  # Use a custom configuration file
  arachne crawl -c myconfig.yaml https://example.com

Configuration file (.arachne) example:
  seeds:
    - https://example.com
  sites:
    example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      depth: 5`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link distance from a seed")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch and store")
	cmd.Flags().IntP("workers", "w", config.DefaultConcurrency,
		"Number of concurrent crawl workers")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Minimum delay between requests to the same host")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page fetch")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().Bool("no-robots", false,
		"Ignore robots.txt (use only on sites you control)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .arachne in current or home directory)")

	// Storage flags
	cmd.Flags().Bool("save", false,
		"Persist pages to a SQLite database in the XDG data directory")
	cmd.Flags().String("db", "",
		"Custom database directory (implies --save)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.Delay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	noRobots, err := cmd.Flags().GetBool("no-robots")
	if err != nil {
		return nil, err
	}
	cfg.RespectRobots = !noRobots

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}
	cfg.DBDir, err = cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if save && cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	// Seeds come from positional arguments, falling back to the config
	// file's seed list.
	cfg.Seeds = args
	if len(cfg.Seeds) == 0 && cfg.SiteConfigs != nil {
		cfg.Seeds = cfg.SiteConfigs.Seeds
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Sensitive attributes such as cookies and authorization headers are
// masked before they reach the output.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewRedactHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// runCrawl executes the crawl and writes the report.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	spiderOpts := []crawler.Option{
		crawler.WithLogger(logger),
	}

	// Persist pages to SQLite when a database directory is configured;
	// otherwise pages live in memory for the duration of the run.
	if cfg.DBDir != "" {
		db, err := store.OpenSQLite(cfg.DBDir, store.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
		spiderOpts = append(spiderOpts, crawler.WithContentStore(db))
	}

	spider, err := crawler.New(cfg, spiderOpts...)
	if err != nil {
		return err
	}

	fmt.Printf("Crawling %d seed(s)...\n", len(cfg.Seeds))
	startTime := time.Now()

	results, stats, runErr := spider.Run(ctx, cfg.Seeds)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Crawl completed in %s\n\n", elapsed.Round(time.Millisecond))

	crawlReport := &model.CrawlReport{
		Seeds:        cfg.Seeds,
		StartedAt:    startTime,
		Duration:     elapsed,
		PagesCrawled: stats.PagesCrawled,
		PagesFailed:  stats.PagesFailed,
		PagesDenied:  stats.PagesDenied,
		URLsSeen:     stats.URLsSeen,
		Canceled:     errors.Is(runErr, context.Canceled),
		Pages:        results,
	}

	return outputReport(cfg, crawlReport)
}

// outputReport writes the crawl report in the requested format.
func outputReport(cfg *config.Config, crawlReport *model.CrawlReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(crawlReport)
	return err
}
