package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"brief-scraper/config"
	"brief-scraper/fetcher"
	"brief-scraper/logger"
	"brief-scraper/models"
	"brief-scraper/output"
	"brief-scraper/pagerange"
	"brief-scraper/parser"
	"brief-scraper/scraper"
)

// options holds the parsed command line
type options struct {
	configPath string
	startPage  int
	endPage    int
	outputPath string
	dryRun     bool
	logLevel   string
	set        map[string]bool // flags given explicitly
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	if opts.dryRun {
		if err := printPageURLs(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log := logger.Must(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, runErr := run(ctx, cfg, log)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Run failed", zap.Error(runErr))
		os.Exit(1)
	}
	if runErr != nil {
		log.Warn("Interrupted, writing partial results", zap.Int("records", len(records)))
	}

	if err := writeRecords(opts.outputPath, records); err != nil {
		log.Error("Failed to write output", zap.Error(err))
		os.Exit(1)
	}
	if opts.outputPath != "" {
		log.Info("Wrote results", zap.String("path", opts.outputPath), zap.Int("records", len(records)))
	}
}

// parseFlags parses args into options
func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.configPath, "config", "config.yaml", "Path to configuration file")
	fs.IntVar(&opts.startPage, "start", 0, "First page to fetch (overrides crawl.start_page)")
	fs.IntVar(&opts.endPage, "end", 0, "Last page to fetch, inclusive (overrides crawl.end_page)")
	fs.StringVar(&opts.outputPath, "output", "", "Write the JSON array to this file instead of stdout")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the API URLs that would be fetched and exit")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// buildConfig layers defaults, the config file, the environment and the
// explicitly given flags, in that order, and validates the result
func buildConfig(opts *options) (*config.Config, error) {
	cfg := loadConfig(opts.configPath)
	if err := config.ApplyEnv(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if opts.set["start"] {
		cfg.Crawl.StartPage = opts.startPage
	}
	if opts.set["end"] {
		cfg.Crawl.EndPage = opts.endPage
	}
	if opts.set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run wires the fetchers to the scraper and walks the configured page range
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) ([]models.OutputRecord, error) {
	client := fetcher.NewClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)
	pages := fetcher.NewPageFetcher(client, cfg.API.BaseURL, pagerange.Query{
		Keyword:  cfg.API.Keyword,
		PageSize: cfg.API.PageSize,
	})
	details := fetcher.NewDetailExtractor(client, parser.NewDetailParser(cfg.Extract.SelectorClass))

	s := scraper.NewScraper(pages, details, cfg.Crawl.PageDelay, scraper.WithLogger(log))

	log.Info("Starting run",
		zap.String("base_url", cfg.API.BaseURL),
		zap.Int("start_page", cfg.Crawl.StartPage),
		zap.Int("end_page", cfg.Crawl.EndPage),
		zap.Int("pages", pagerange.CountPages(cfg.Crawl.StartPage, cfg.Crawl.EndPage)),
		zap.Duration("page_delay", cfg.Crawl.PageDelay))

	return s.ProcessPages(ctx, cfg.Crawl.StartPage, cfg.Crawl.EndPage)
}

// writeRecords prints records to stdout, or to path when one is given
func writeRecords(path string, records []models.OutputRecord) error {
	if path == "" {
		return output.NewWriter(os.Stdout).WriteRecords(records)
	}
	return output.WriteFile(path, records)
}

// printPageURLs lists the API requests a run would make
func printPageURLs(cfg *config.Config) error {
	urls, err := pagerange.GeneratePageURLs(cfg.API.BaseURL, pagerange.Query{
		Keyword:  cfg.API.Keyword,
		PageSize: cfg.API.PageSize,
	}, cfg.Crawl.StartPage, cfg.Crawl.EndPage)
	if err != nil {
		return err
	}

	fmt.Printf("Would fetch %d pages:\n", len(urls))
	for _, u := range urls {
		fmt.Printf("  %s: %s\n", u.Label, u.URL)
	}
	return nil
}

// loadConfig loads configuration from file or uses defaults
func loadConfig(configPath string) *config.Config {
	var cfg *config.Config
	if _, err := os.Stat(configPath); err == nil {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config file: %v. Using defaults.\n", err)
			cfg = config.GetDefaultConfig()
		}
	} else {
		cfg = config.GetDefaultConfig()
	}
	return cfg
}
