package hash_test

import (
	"testing"

	"github.com/gi8lino/jirahook/internal/hash"

	"github.com/stretchr/testify/assert"
)

func TestPayload(t *testing.T) {
	t.Parallel()

	t.Run("stable for equal input", func(t *testing.T) {
		t.Parallel()

		a := hash.Payload([]byte(`{"webhookEvent":"jira:issue_created"}`))
		b := hash.Payload([]byte(`{"webhookEvent":"jira:issue_created"}`))
		assert.Equal(t, a, b)
		assert.Regexp(t, `^[a-f0-9]{16}$`, a)
	})

	t.Run("differs for different input", func(t *testing.T) {
		t.Parallel()

		a := hash.Payload([]byte(`{"key":"P-1"}`))
		b := hash.Payload([]byte(`{"key":"P-2"}`))
		assert.NotEqual(t, a, b)
	})

	t.Run("empty input is the FNV offset basis", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "cbf29ce484222325", hash.Payload(nil))
	})
}
