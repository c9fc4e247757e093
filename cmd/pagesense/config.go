package main

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/fwojciec/pagesense"
	"github.com/kelseyhightower/envconfig"
)

// Fetcher, extractor and analyzer implementations selectable by configuration.
const (
	FetcherHTTP = "http"
	FetcherRod  = "rod"

	ExtractorSelector    = "selector"
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"

	AnalyzerNLPAPI = "nlpapi"
	AnalyzerGemini = "gemini"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	Host string `envconfig:"HOST" default:""`
	Port string `envconfig:"PORT" default:"8000"`

	NLPAPIURL  string        `envconfig:"NLP_API_URL" default:"https://kooye7u703.execute-api.us-east-1.amazonaws.com/NLPAnalyzer"`
	NLPTimeout time.Duration `envconfig:"NLP_TIMEOUT" default:"30s"`

	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	Fetcher      string        `envconfig:"FETCHER" default:"http"`
	Extractor    string        `envconfig:"EXTRACTOR" default:"selector"`

	RodRecycleAfter int64  `envconfig:"ROD_RECYCLE_AFTER" default:"75"`
	RodBrowserBin   string `envconfig:"ROD_BROWSER_BIN"`

	Analyzer     string `envconfig:"ANALYZER" default:"nlpapi"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// LoadConfig reads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Fetcher {
	case FetcherHTTP, FetcherRod:
	default:
		return pagesense.Errorf(pagesense.EINVALID, "FETCHER must be %q or %q, got %q", FetcherHTTP, FetcherRod, c.Fetcher)
	}

	switch c.Extractor {
	case ExtractorSelector, ExtractorReadability, ExtractorTrafilatura:
	default:
		return pagesense.Errorf(pagesense.EINVALID, "EXTRACTOR must be one of %s, got %q",
			strings.Join([]string{ExtractorSelector, ExtractorReadability, ExtractorTrafilatura}, ", "), c.Extractor)
	}

	switch c.Analyzer {
	case AnalyzerNLPAPI:
		if c.NLPAPIURL == "" {
			return pagesense.Errorf(pagesense.EINVALID, "NLP_API_URL is required")
		}
	case AnalyzerGemini:
		if c.GeminiAPIKey == "" {
			return pagesense.Errorf(pagesense.EINVALID, "GEMINI_API_KEY is required when ANALYZER=%s. Get a key at https://aistudio.google.com/apikey", AnalyzerGemini)
		}
	default:
		return pagesense.Errorf(pagesense.EINVALID, "ANALYZER must be %q or %q, got %q", AnalyzerNLPAPI, AnalyzerGemini, c.Analyzer)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return pagesense.Errorf(pagesense.EINVALID, "LOG_FORMAT must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewLogger builds the process logger described by the configuration.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, pagesense.Errorf(pagesense.EINVALID, "LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
	return level, nil
}
