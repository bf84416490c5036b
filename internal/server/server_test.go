package server

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHTTPServer(t *testing.T) {
	t.Parallel()

	t.Run("stops on context cancel", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
		defer cancel()

		err := RunHTTPServer(ctx, http.NotFoundHandler(), "127.0.0.1:0", logger)
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "Shutting down server")
	})

	t.Run("address in use", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close() // nolint:errcheck

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		err = RunHTTPServer(t.Context(), http.NotFoundHandler(), ln.Addr().String(), logger)
		require.Error(t, err)
	})
}
