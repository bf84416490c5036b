package server

import (
	"log/slog"
	"net/http"

	"github.com/gi8lino/jirahook/internal/chat"
	"github.com/gi8lino/jirahook/internal/handlers"
	"github.com/gi8lino/jirahook/internal/middleware"
	"github.com/gi8lino/jirahook/internal/notify"
)

// NewRouter creates a new HTTP router.
func NewRouter(
	builder *notify.Builder,
	poster chat.Poster,
	logger *slog.Logger,
	routePrefix string,
	debug bool,
) http.Handler {
	root := http.NewServeMux()

	// Health checks
	root.Handle("GET /healthz", handlers.Healthz())
	root.Handle("POST /healthz", handlers.Healthz())

	// Jira webhook receiver
	webhook := handlers.WebhookHandler(builder, poster, logger)
	root.Handle("POST /webhook", webhook)
	root.Handle("POST /hooks/jira", webhook)

	mws := []middleware.Middleware{middleware.RequestID()}
	if debug {
		mws = append(mws, middleware.LoggingMiddleware(logger))
	}

	return mountUnderPrefix(middleware.Chain(root, mws...), routePrefix)
}
