package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir/internal/logging"
)

func TestLogSender_LogsRecipientButNotBody(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	s := NewLogSender(logger)
	err := s.Send(context.Background(), Message{
		To:      "a@x.com",
		Subject: "Password reset",
		Body:    "token-1234567890",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "a@x.com"))
	assert.True(t, strings.Contains(out, "Password reset"))
	assert.False(t, strings.Contains(out, "token-1234567890"), "body must not be logged")
}
