package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagesense"
	"github.com/fwojciec/pagesense/client"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Logger    *slog.Logger
	Service   pagesense.AnalysisService
	Client    *client.Client
	Converter pagesense.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Run the analysis HTTP server"`
	Check CheckCmd `cmd:"" help:"Submit a URL to a running server and print the results"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URL      string `arg:"" help:"URL to analyze"`
	Endpoint string `short:"e" default:"http://localhost:8000/analyze-url" help:"Analysis endpoint"`
	Format   string `short:"f" enum:"markdown,html" default:"markdown" help:"Output format (markdown, html)"`
}
