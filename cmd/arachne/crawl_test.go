package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arachnid-dev/arachne/internal/config"
)

// TestNewCrawlCmd tests the crawl command creation.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawl [url...]" {
			t.Errorf("expected use 'crawl [url...]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"depth", "max-pages", "workers", "delay", "timeout",
			"user-agent", "no-robots", "config", "save", "db",
			"json", "markdown", "output",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})
}

// TestBuildConfig tests building a Config from command flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{}); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error: %v", err)
		}

		if cfg.MaxDepth != config.DefaultMaxDepth {
			t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, config.DefaultMaxDepth)
		}
		if cfg.MaxPages != config.DefaultMaxPages {
			t.Errorf("MaxPages = %d, want %d", cfg.MaxPages, config.DefaultMaxPages)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, config.DefaultConcurrency)
		}
		if !cfg.RespectRobots {
			t.Error("RespectRobots = false, want true by default")
		}
		if cfg.DBDir != "" {
			t.Errorf("DBDir = %q, want empty without --save", cfg.DBDir)
		}
		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "https://example.com" {
			t.Errorf("Seeds = %v", cfg.Seeds)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		err := cmd.ParseFlags([]string{
			"--depth", "5",
			"--max-pages", "10",
			"--workers", "2",
			"--delay", "250ms",
			"--no-robots",
			"--user-agent", "testbot/0.1",
		})
		if err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error: %v", err)
		}

		if cfg.MaxDepth != 5 || cfg.MaxPages != 10 || cfg.Concurrency != 2 {
			t.Errorf("limits = depth %d, pages %d, workers %d", cfg.MaxDepth, cfg.MaxPages, cfg.Concurrency)
		}
		if cfg.Delay != 250*time.Millisecond {
			t.Errorf("Delay = %v, want 250ms", cfg.Delay)
		}
		if cfg.RespectRobots {
			t.Error("RespectRobots = true despite --no-robots")
		}
		if cfg.UserAgent != "testbot/0.1" {
			t.Errorf("UserAgent = %q", cfg.UserAgent)
		}
	})

	t.Run("save enables the XDG database directory", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--save"}); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error: %v", err)
		}
		if cfg.DBDir == "" {
			t.Error("DBDir empty despite --save")
		}
	})

	t.Run("db flag sets a custom directory", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--db", "/tmp/arachne-test"}); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error: %v", err)
		}
		if cfg.DBDir != "/tmp/arachne-test" {
			t.Errorf("DBDir = %q, want /tmp/arachne-test", cfg.DBDir)
		}
	})

	t.Run("missing explicit config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--config", "/nonexistent/config.yaml"}); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"https://example.com"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file provides seeds and site settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".arachne")
		content := strings.Join([]string{
			"seeds:",
			"  - https://example.com",
			"sites:",
			"  example.com:",
			"    cookie: session=abc",
			"    depth: 5",
		}, "\n")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		// No positional seeds; they come from the config file.
		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig() error: %v", err)
		}

		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "https://example.com" {
			t.Errorf("Seeds = %v, want the config file seed", cfg.Seeds)
		}
		site := cfg.SiteConfigs.GetSiteConfig("example.com")
		if site.Cookie != "session=abc" || site.Depth != 5 {
			t.Errorf("site config = %+v", site)
		}
	})

	t.Run("command line seeds take precedence", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".arachne")
		if err := os.WriteFile(path, []byte("seeds:\n  - https://file.test\n"), 0600); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("ParseFlags() error: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://args.test"})
		if err != nil {
			t.Fatalf("buildConfig() error: %v", err)
		}
		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "https://args.test" {
			t.Errorf("Seeds = %v, want the command line seed", cfg.Seeds)
		}
	})
}

// TestSetupLogger tests logger creation with both verbosity levels.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	if logger := setupLogger(false); logger == nil {
		t.Error("setupLogger(false) returned nil")
	}
	if logger := setupLogger(true); logger == nil {
		t.Error("setupLogger(true) returned nil")
	}
}
