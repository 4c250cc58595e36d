package mailer

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRaw(t *testing.T) {
	env := Envelope{
		From:    "me@example.com",
		To:      "you@example.com",
		Subject: "Hello there",
		Body:    "line one\nline two",
	}

	raw := encodeRaw(env)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err, "Raw must be base64url without padding")
	msg := string(decoded)

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found, "headers and body separated by a blank line")

	assert.Contains(t, headers, "From: me@example.com\r\n")
	assert.Contains(t, headers, "To: you@example.com\r\n")
	assert.Contains(t, headers, "Subject: Hello there\r\n")
	assert.Contains(t, headers, "MIME-Version: 1.0\r\n")
	assert.Contains(t, headers, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Equal(t, "line one\nline two", body)
}

func TestEncodeRaw_NonASCIISubject(t *testing.T) {
	raw := encodeRaw(Envelope{
		From:    "me@example.com",
		To:      "you@example.com",
		Subject: "Grüße",
		Body:    "hi",
	})

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)

	// Non-ASCII subjects are MIME word-encoded
	assert.Contains(t, string(decoded), "Subject: =?UTF-8?q?")
}

func TestDryRunSender(t *testing.T) {
	var s Sender = DryRun{}

	id, err := s.Send(t.Context(), Envelope{To: "a@example.com"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "dry-run-"))

	id2, err := s.Send(t.Context(), Envelope{To: "a@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, id, id2, "fabricated IDs are unique")
}
