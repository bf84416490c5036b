package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gi8lino/jirahook/internal/chat"
	"github.com/gi8lino/jirahook/internal/notify"
	"github.com/gi8lino/jirahook/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createdPayload = `{
	"webhookEvent": "jira:issue_created",
	"issue": {
		"self": "https://h/rest/api/2/issue/1",
		"key": "P-1",
		"fields": {"summary": "Title", "issuetype": {"name": "Bug", "iconUrl": "i"}, "priority": {"name": "Blocker"}}
	},
	"user": {"displayName": "Al", "name": "al", "avatarUrls": {"48x48": "a"}}
}`

func serve(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) chat.Envelope {
	t.Helper()
	var env chat.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWebhookHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns message envelope", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		builder := notify.NewBuilder(notify.Options{BlockerOnly: true}, logger)

		rec := serve(t, WebhookHandler(builder, nil, logger), createdPayload)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Content)
		assert.Nil(t, env.Error)
		assert.Equal(t, ":new: Al created Bug [P-1](https://h/browse/P-1)", env.Content.Text)
		assert.Equal(t, notify.AlertColor, env.Content.Attachments[0].Color)
	})

	t.Run("forwards message to chat", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		builder := notify.NewBuilder(notify.Options{}, logger)

		poster := &testutils.MockPoster{}

		rec := serve(t, WebhookHandler(builder, poster, logger), createdPayload)

		assert.Equal(t, http.StatusOK, rec.Code)
		posted := poster.Posted()
		require.Len(t, posted, 1)
		assert.Equal(t, "al", posted[0].Alias)
	})

	t.Run("delivery failure is a bad gateway", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		builder := notify.NewBuilder(notify.Options{}, logger)

		poster := &testutils.MockPoster{PostFn: func(ctx context.Context, msg *chat.Message) error {
			return errors.New("chat error 500: boom")
		}}

		rec := serve(t, WebhookHandler(builder, poster, logger), createdPayload)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.False(t, env.Error.Success)
		assert.Equal(t, "deliver message: chat error 500: boom", env.Error.Message)
		assert.Contains(t, logs.String(), "chat delivery failed")
	})

	t.Run("no issue means no content", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		builder := notify.NewBuilder(notify.Options{}, logger)

		poster := &testutils.MockPoster{}

		rec := serve(t, WebhookHandler(builder, poster, logger), `{"webhookEvent":"jira:worklog_updated"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, poster.Posted())
	})

	t.Run("malformed issue returns error envelope", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		builder := notify.NewBuilder(notify.Options{}, logger)

		payload := `{"webhookEvent":"jira:issue_created","issue":{"self":"https://h/rest/api/2/issue/1","key":"P-1","fields":{}},"user":{"displayName":"Al"}}`
		rec := serve(t, WebhookHandler(builder, nil, logger), payload)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Nil(t, env.Content)
		assert.Equal(t, "issue has no issuetype "+payload, env.Error.Message)
		assert.Contains(t, logs.String(), "jira event error")
		assert.Contains(t, logs.String(), "issue=P-1")
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		builder := notify.NewBuilder(notify.Options{}, logger)

		rec := serve(t, WebhookHandler(builder, nil, logger), `{"webhookEvent":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.True(t, strings.HasPrefix(env.Error.Message, "decode webhook:"))
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		builder := notify.NewBuilder(notify.Options{}, logger)

		rec := serve(t, WebhookHandler(builder, nil, logger), strings.Repeat("x", maxBodyBytes+1))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
