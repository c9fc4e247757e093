package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesense"
	"github.com/fwojciec/pagesense/analyze"
	"github.com/fwojciec/pagesense/client"
	"github.com/fwojciec/pagesense/gemini"
	"github.com/fwojciec/pagesense/goquery"
	"github.com/fwojciec/pagesense/htmltomarkdown"
	pshttp "github.com/fwojciec/pagesense/http"
	"github.com/fwojciec/pagesense/preview"
	"github.com/fwojciec/pagesense/readability"
	"github.com/fwojciec/pagesense/resty"
	"github.com/fwojciec/pagesense/rod"
	pslog "github.com/fwojciec/pagesense/slog"
	"github.com/fwojciec/pagesense/trafilatura"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	gin.SetMode(gin.ReleaseMode)

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// errorText returns the message of an application error, or the full error
// text otherwise.
func errorText(err error) string {
	var e *pagesense.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Main represents the program.
type Main struct {
	// Configuration. Loaded from the environment if nil when Run is called.
	Config *Config

	// Fetcher used by the analysis pipeline. Closed by Close.
	Fetcher pagesense.Fetcher

	// OpenFetcher builds the fetcher for the serve command. Defaults to the
	// implementation selected by Config.Fetcher.
	OpenFetcher func(cfg *Config, logger *slog.Logger) (pagesense.Fetcher, error)

	// Service for end-to-end testing. Built from Config if nil.
	Service pagesense.AnalysisService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesense"),
		kong.Description("Preview a web page and classify its sentiment."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesense --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Config == nil {
		if m.Config, err = LoadConfig(); err != nil {
			return err
		}
	}
	deps.Config = m.Config

	logger, err := m.Config.NewLogger(stderr)
	if err != nil {
		return err
	}
	deps.Logger = logger

	switch cmd {
	case "serve":
		if m.Service == nil {
			if err := m.wireService(ctx, logger, stderr); err != nil {
				return err
			}
			defer m.Close()
		}
		deps.Service = m.Service
	case "check":
		deps.Client = client.New(cli.Check.Endpoint)
		deps.Converter = htmltomarkdown.NewConverter()
	}

	return kongCtx.Run(deps)
}

// wireService builds the preview → analyze pipeline from m.Config.
func (m *Main) wireService(ctx context.Context, logger *slog.Logger, stderr io.Writer) (err error) {
	open := m.OpenFetcher
	if open == nil {
		open = newFetcher
	}
	fetcher, err := open(m.Config, logger)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: FETCHER=rod needs Chrome or Chromium installed (or ROD_BROWSER_BIN set)")
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	m.Fetcher = pslog.NewLoggingFetcher(fetcher, logger)
	defer func() {
		if err != nil {
			_ = m.Close()
			m.Fetcher = nil
		}
	}()

	extractor, err := newExtractor(m.Config)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(ctx, m.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to analyzer: %w", err)
	}

	previews := preview.NewPreviewer(m.Fetcher, pslog.NewLoggingExtractor(extractor, logger))
	m.Service = analyze.NewService(previews, pslog.NewLoggingAnalyzer(analyzer, logger), logger)
	return nil
}

func newFetcher(cfg *Config, logger *slog.Logger) (pagesense.Fetcher, error) {
	switch cfg.Fetcher {
	case FetcherRod:
		managerOpts := []rod.ManagerOption{
			rod.WithRecycleAfter(cfg.RodRecycleAfter),
			rod.WithLogger(logger),
		}
		if cfg.RodBrowserBin != "" {
			managerOpts = append(managerOpts, rod.WithBrowserBin(cfg.RodBrowserBin))
		}
		return rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithManagerOptions(managerOpts...),
		)
	default:
		return pshttp.NewFetcher(pshttp.WithTimeout(cfg.FetchTimeout)), nil
	}
}

func newExtractor(cfg *Config) (pagesense.Extractor, error) {
	switch cfg.Extractor {
	case ExtractorSelector:
		return goquery.NewExtractor(), nil
	case ExtractorReadability:
		return readability.NewExtractor(), nil
	case ExtractorTrafilatura:
		return trafilatura.NewExtractor(), nil
	}
	return nil, pagesense.Errorf(pagesense.EINVALID, "unknown extractor %q", cfg.Extractor)
}

func newAnalyzer(ctx context.Context, cfg *Config) (pagesense.Analyzer, error) {
	switch cfg.Analyzer {
	case AnalyzerGemini:
		c, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return gemini.NewAnalyzer(c, cfg.GeminiModel, gemini.WithTimeout(cfg.NLPTimeout)), nil
	default:
		return resty.NewAnalyzer(cfg.NLPAPIURL, resty.WithTimeout(cfg.NLPTimeout)), nil
	}
}
