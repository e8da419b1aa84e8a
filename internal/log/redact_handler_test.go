package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactHandler(t *testing.T) {
	t.Parallel()

	t.Run("masks sensitive keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("fetching page",
			"url", "https://example.com/",
			"cookie", "session=abc123",
			"Authorization", "Bearer secret-token",
		)

		out := buf.String()
		if strings.Contains(out, "abc123") {
			t.Errorf("cookie value leaked into log output: %s", out)
		}
		if strings.Contains(out, "secret-token") {
			t.Errorf("authorization value leaked into log output: %s", out)
		}
		if !strings.Contains(out, MaskValue) {
			t.Errorf("expected mask value in output: %s", out)
		}
		if !strings.Contains(out, "https://example.com/") {
			t.Errorf("non-sensitive value should pass through: %s", out)
		}
	})

	t.Run("masks keys inside groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("request",
			slog.Group("headers",
				slog.String("cookie", "secret=1"),
				slog.String("accept", "text/html"),
			),
		)

		out := buf.String()
		if strings.Contains(out, "secret=1") {
			t.Errorf("grouped cookie value leaked: %s", out)
		}
		if !strings.Contains(out, "text/html") {
			t.Errorf("non-sensitive grouped value should pass through: %s", out)
		}
	})

	t.Run("masks attrs added via With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

		logger.With("token", "tok-42").Info("worker started")

		if strings.Contains(buf.String(), "tok-42") {
			t.Errorf("With-attached token leaked: %s", buf.String())
		}
	})

	t.Run("nil inner handler falls back to default", func(t *testing.T) {
		t.Parallel()

		h := NewRedactHandler(nil)
		if h == nil {
			t.Fatal("expected handler")
		}
	})
}
