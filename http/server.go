package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagesense"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is the time given for outstanding requests to finish before shutdown.
const ShutdownTimeout = 5 * time.Second

// RootMessage is served on GET /.
const RootMessage = "This is the server API page. You may access its services via the client app."

// Server is the pagesense API server.
type Server struct {
	server  *http.Server
	router  *gin.Engine
	service pagesense.AnalysisService
	logger  *slog.Logger

	addr        string
	corsOrigins []string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address. Defaults to ":8000".
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithCORSOrigins restricts cross-origin requests to the given origins.
// All origins are allowed when none are configured.
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithLogger sets the request logger. Defaults to discarding output.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new Server that serves requests with service.
func NewServer(service pagesense.AnalysisService, opts ...ServerOption) *Server {
	s := &Server{
		service: service,
		logger:  slog.New(slog.DiscardHandler),
		addr:    ":8000",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))
	s.router.Use(cors.New(corsConfig(s.corsOrigins)))

	s.router.GET("/", s.handleRoot)
	s.router.POST("/analyze-url", s.handleAnalyze)

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.logger.Info("server listening", "addr", ln.Addr().String())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, RootMessage)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.logger.Warn("reading request body", "path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey), "err", err)
	}
	resp := HandleAnalyze(c.Request.Context(), s.service, body)
	c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
