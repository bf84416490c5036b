package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gi8lino/jirahook/internal/chat"
	"github.com/gi8lino/jirahook/internal/hash"
	"github.com/gi8lino/jirahook/internal/jira"
	"github.com/gi8lino/jirahook/internal/middleware"
	"github.com/gi8lino/jirahook/internal/notify"
)

// maxBodyBytes caps the size of an accepted webhook body.
const maxBodyBytes = 1 << 20

// WebhookHandler turns a Jira webhook into a chat message.
// If poster is nil, the message is only returned in the response.
func WebhookHandler(builder *notify.Builder, poster chat.Poster, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			logger.Warn("read webhook body", "error", err)
			writeEnvelope(w, status, chat.Failure("read body: "+err.Error()))
			return
		}

		log := logger.With(
			"request_id", middleware.GetRequestID(r.Context()),
			"payload", hash.Payload(body),
		)

		ev, err := jira.ParseEvent(body)
		if err != nil {
			log.Warn("invalid webhook payload", "error", err)
			writeEnvelope(w, http.StatusBadRequest, chat.Failure(err.Error()+" "+string(body)))
			return
		}

		log = log.With("event", ev.Kind(), "issue", ev.IssueKey())
		if ev.Issue != nil {
			log = log.With("jira", jira.BaseURL(ev.Issue.Self))
		}

		msg, err := builder.Build(ev)
		if err != nil {
			log.Error("jira event error", "error", err)
			writeEnvelope(w, http.StatusUnprocessableEntity, chat.Failure(err.Error()))
			return
		}
		if msg == nil {
			log.Debug("no notification for event")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if poster != nil {
			if err := poster.Post(r.Context(), msg); err != nil {
				log.Error("chat delivery failed", "error", err)
				writeEnvelope(w, http.StatusBadGateway, chat.Failure("deliver message: "+err.Error()))
				return
			}
			log.Info("notification delivered")
		}

		writeEnvelope(w, http.StatusOK, chat.Success(msg))
	}
}
