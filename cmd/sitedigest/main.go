package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sitedigest/sitedigest"
	"github.com/sitedigest/sitedigest/batch"
	"github.com/sitedigest/sitedigest/excelize"
	"github.com/sitedigest/sitedigest/gemini"
	"github.com/sitedigest/sitedigest/goquery"
	sdhttp "github.com/sitedigest/sitedigest/http"
	sdslog "github.com/sitedigest/sitedigest/slog"
	"github.com/sitedigest/sitedigest/trafilatura"
	"google.golang.org/genai"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitedigest"),
		kong.Description("Turn a sitemap into an SEO summary spreadsheet"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The credential is a startup-time requirement, never a per-request error.
	if cli.APIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return errors.New("GEMINI_API_KEY not set")
	}

	logger := sdslog.NewLogger(cli.LogLevel)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	fetcher := sdhttp.NewFetcher(sdhttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	analyzer, err := buildAnalyzer(cli, client, fetcher, logger)
	if err != nil {
		return err
	}

	switch kongCtx.Command() {
	case "serve":
		return runServe(ctx, cli, analyzer, logger, stdout)
	case "run <url>":
		return runOnce(ctx, cli, analyzer, stdout)
	default:
		return fmt.Errorf("unknown command: %s", kongCtx.Command())
	}
}

// buildAnalyzer wires the pipeline components according to the CLI flags.
func buildAnalyzer(cli *CLI, client *genai.Client, fetcher sitedigest.Fetcher, logger *slog.Logger) (*batch.Analyzer, error) {
	filter, err := buildFilter(cli.Include, cli.Exclude)
	if err != nil {
		return nil, err
	}

	var extractor sitedigest.Extractor
	switch cli.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	summarizer := sdslog.NewLoggingSummarizer(
		gemini.NewSummarizer(client, gemini.WithModel(cli.Model)),
		logger,
	)

	return &batch.Analyzer{
		Sitemaps:    sdslog.NewLoggingSitemapService(sdhttp.NewSitemapService(nil), logger),
		Fetcher:     fetcher,
		Extractor:   extractor,
		Summarizer:  summarizer,
		Writer:      sdslog.NewLoggingRecordWriter(excelize.NewWriter(), logger),
		Filter:      filter,
		Limiter:     batch.NewHostLimiter(cli.RPS),
		OutputPath:  cli.Output,
		Concurrency: cli.Concurrency,
		RetryDelays: retryDelays(cli.Retries),
		Logger:      logger,
	}, nil
}

// buildFilter compiles include/exclude patterns into a URLFilter.
// Returns nil when no patterns are given.
func buildFilter(include, exclude []string) (*sitedigest.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &sitedigest.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// retryDelays returns doubling delays starting at 1s, one per retry.
func retryDelays(retries int) []time.Duration {
	if retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, retries)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// runServe starts the HTTP server and blocks until the context is canceled.
func runServe(ctx context.Context, cli *CLI, analyzer sitedigest.Analyzer, logger *slog.Logger, stdout io.Writer) error {
	mux := http.NewServeMux()
	transport := sdhttp.NewTransport(analyzer, logger)
	transport.RegisterRoutes(mux)

	handler := sdhttp.RequestID(sdhttp.Logging(logger)(mux))

	srv := &http.Server{
		Addr:              cli.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Fprintf(stdout, "listening on %s\n", cli.Serve.Addr)
	logger.Info("server started", "addr", cli.Serve.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runOnce analyzes a single sitemap and prints the outcome.
func runOnce(ctx context.Context, cli *CLI, analyzer sitedigest.Analyzer, stdout io.Writer) error {
	result, err := analyzer.AnalyzeSitemap(ctx, cli.Run.URL)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Analyzed %d of %d pages (%s)\n", result.AnalyzedCount, result.TotalURLs, result.Status)
	for _, item := range result.Items {
		if item.Status == sitedigest.ItemSkipped {
			fmt.Fprintf(stdout, "  skipped %s: %s\n", item.URL, sitedigest.ErrorMessage(item.Err))
		}
	}
	fmt.Fprintf(stdout, "Wrote %s\n", result.OutputPath)
	return nil
}
