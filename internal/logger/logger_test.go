package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{" Warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERR", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"something", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestInitWith_ReadsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_PRETTY", "false")
	InitWith(&buf)
	t.Cleanup(func() { base = zerolog.Logger{} })

	L().Info().Msg("dropped")
	L().Warn().Str("symbol", "GLD").Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, `"symbol":"GLD"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", true)
	l.Info().Msg("refresh done")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "refresh done") {
		t.Fatalf("expected console output, got %s", buf.String())
	}
}

func TestL_InitializesLazily(t *testing.T) {
	base = zerolog.Logger{}
	t.Cleanup(func() { base = zerolog.Logger{} })
	if L().GetLevel() == zerolog.NoLevel {
		t.Fatalf("logger level not initialized")
	}
}

func TestComponent_TagsOutput(t *testing.T) {
	var buf bytes.Buffer
	Set(New(&buf, "info", false))
	t.Cleanup(func() { base = zerolog.Logger{} })

	lg := Component("orchestrator")
	lg.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"orchestrator"`) {
		t.Fatalf("expected component field, got %s", buf.String())
	}
}
