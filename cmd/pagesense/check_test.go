package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/pagesense"
	"github.com/fwojciec/pagesense/client"
	main "github.com/fwojciec/pagesense/cmd/pagesense"
	"github.com/fwojciec/pagesense/htmltomarkdown"
	"github.com/fwojciec/pagesense/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysisServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints results as markdown", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisServer(t, http.StatusOK, `{"sentiment":"positive","contentType":"news","textPreview":"Hello"}`)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Logger:    slog.New(slog.DiscardHandler),
			Client:    client.New(srv.URL),
			Converter: htmltomarkdown.NewConverter(),
		}

		cmd := &main.CheckCmd{URL: "https://example.com", Format: "markdown"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "**Sentiment:** positive")
		assert.Contains(t, stdout.String(), "**Content Type:** news")
		assert.Contains(t, stdout.String(), `**Input Text Preview:** "Hello"`)
	})

	t.Run("prints results as html", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisServer(t, http.StatusOK, `{"sentiment":"neutral"}`)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.DiscardHandler),
			Client: client.New(srv.URL),
		}

		cmd := &main.CheckCmd{URL: "https://example.com", Format: "html"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<p><strong>Sentiment:</strong> neutral</p>")
		assert.Contains(t, stdout.String(), "<p><strong>Content Type:</strong> N/A</p>")
	})

	t.Run("returns error when markdown rendering fails", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisServer(t, http.StatusOK, `{"sentiment":"positive"}`)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.DiscardHandler),
			Client: client.New(srv.URL),
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return "", pagesense.Errorf(pagesense.EINVALID, "bad html")
				},
			},
		}

		cmd := &main.CheckCmd{URL: "https://example.com", Format: "markdown"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rendering results")
		assert.Empty(t, stdout.String())
	})

	t.Run("returns invalid URL alert", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.DiscardHandler),
			Client: client.New("http://127.0.0.1:1"),
		}

		cmd := &main.CheckCmd{URL: "not a url", Format: "markdown"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pagesense.EINVALID, pagesense.ErrorCode(err))
		assert.Equal(t, client.AlertInvalidURL, pagesense.ErrorMessage(err))
	})

	t.Run("returns failure alert on server error", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisServer(t, http.StatusInternalServerError, `{"error":"Failed to analyze the URL"}`)
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.DiscardHandler),
			Client: client.New(srv.URL),
		}

		cmd := &main.CheckCmd{URL: "https://example.com", Format: "markdown"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pagesense.EUNAVAILABLE, pagesense.ErrorCode(err))
		assert.Equal(t, client.AlertFailed, pagesense.ErrorMessage(err))
	})
}
