package http_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/fwojciec/pagesense"
	"github.com/fwojciec/pagesense/analyze"
	"github.com/fwojciec/pagesense/goquery"
	pagesensehttp "github.com/fwojciec/pagesense/http"
	"github.com/fwojciec/pagesense/mock"
	"github.com/fwojciec/pagesense/preview"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestServer_Root(t *testing.T) {
	t.Parallel()

	s := pagesensehttp.NewServer(&mock.AnalysisService{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pagesensehttp.RootMessage, rec.Body.String())
}

func TestServer_AnalyzeURL(t *testing.T) {
	t.Parallel()

	t.Run("end to end success passes delegate fields through", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html><body><article>Example article body</article></body></html>", nil
			},
		}
		analyzer := &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, text string) (pagesense.Analysis, error) {
				assert.Equal(t, "Example article body", text)
				return pagesense.Analysis(`{"sentiment":"positive","contentType":"text/html","textPreview":"Example text preview."}`), nil
			},
		}
		svc := analyze.NewService(preview.NewPreviewer(fetcher, goquery.NewExtractor()), analyzer, nil)
		s := pagesensehttp.NewServer(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/analyze-url", strings.NewReader(`{"url":"https://example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"sentiment":"positive","contentType":"text/html","textPreview":"Example text preview."}`, rec.Body.String())
	})

	t.Run("missing url yields 400", func(t *testing.T) {
		t.Parallel()

		svc := analyze.NewService(&mock.Previewer{}, &mock.Analyzer{}, nil)
		s := pagesensehttp.NewServer(svc)

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze-url", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"URL is required"}`, rec.Body.String())
	})

	t.Run("delegate network error yields 500", func(t *testing.T) {
		t.Parallel()

		previews := &mock.Previewer{
			PreviewFn: func(context.Context, string) (string, error) { return "text", nil },
		}
		analyzer := &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (pagesense.Analysis, error) {
				return nil, pagesense.Errorf(pagesense.EUNAVAILABLE, "dial tcp: connection refused")
			},
		}
		s := pagesensehttp.NewServer(analyze.NewService(previews, analyzer, nil))

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze-url", strings.NewReader(`{"url":"https://example.com"}`)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to analyze the URL"}`, rec.Body.String())
	})

	t.Run("unreachable page yields 400", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(analyze.NewService(
			preview.NewPreviewer(pagesensehttp.NewFetcher(pagesensehttp.WithTimeout(100*time.Millisecond)), goquery.NewExtractor()),
			&mock.Analyzer{},
			nil,
		))

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze-url", strings.NewReader(`{"url":"http://non-existent-host.invalid"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"No text content found at the provided URL"}`, rec.Body.String())
	})
}

func TestServer_RequestID(t *testing.T) {
	t.Parallel()

	t.Run("assigns request id", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(&mock.AnalysisService{})

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, rec.Header().Get(pagesensehttp.RequestIDHeader))
	})

	t.Run("echoes incoming request id", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(&mock.AnalysisService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(pagesensehttp.RequestIDHeader, "abc-123")
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(pagesensehttp.RequestIDHeader))
	})
}

func TestServer_LogsRequests(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := pagesensehttp.NewServer(&mock.AnalysisService{}, pagesensehttp.WithLogger(logger))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	output := buf.String()
	assert.Contains(t, output, "http request")
	assert.Contains(t, output, "method=GET")
	assert.Contains(t, output, "path=/")
	assert.Contains(t, output, "status=200")
}

func TestServer_LogsUnreadableBody(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := pagesensehttp.NewServer(&mock.AnalysisService{}, pagesensehttp.WithLogger(logger))

	req := httptest.NewRequest(http.MethodPost, "/analyze-url", iotest.ErrReader(errors.New("connection reset by peer")))
	req.Header.Set(pagesensehttp.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"URL is required"}`, rec.Body.String())
	output := buf.String()
	assert.Contains(t, output, "reading request body")
	assert.Contains(t, output, "connection reset by peer")
	assert.Contains(t, output, "request_id=req-42")
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	t.Run("allows any origin by default", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(&mock.AnalysisService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/analyze-url", nil)
		req.Header.Set("Origin", "http://localhost:8080")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricts to configured origins", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(&mock.AnalysisService{},
			pagesensehttp.WithCORSOrigins([]string{"http://allowed.example.com"}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://allowed.example.com")
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "http://allowed.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServer_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when context is canceled", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(&mock.AnalysisService{}, pagesensehttp.WithAddr("127.0.0.1:0"))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(pagesensehttp.ShutdownTimeout + time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("returns error for invalid address", func(t *testing.T) {
		t.Parallel()

		s := pagesensehttp.NewServer(&mock.AnalysisService{}, pagesensehttp.WithAddr("invalid:address:99999"))

		err := s.Run(context.Background())
		require.Error(t, err)
	})
}
