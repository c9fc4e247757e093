package main

import (
	"os"
	"os/signal"
	"syscall"

	pshttp "github.com/fwojciec/pagesense/http"
)

// Run executes the serve command. It blocks until SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := pshttp.NewServer(deps.Service,
		pshttp.WithAddr(deps.Config.Addr()),
		pshttp.WithCORSOrigins(deps.Config.CORSOrigins),
		pshttp.WithLogger(deps.Logger),
	)
	return server.Run(ctx)
}
