package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/benya7/rss3-widget/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestNew_LevelsAndFields(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"warn", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"", zerolog.DebugLevel},
		{"chatty", zerolog.DebugLevel},
	}
	for _, c := range cases {
		if got := New(Options{Level: c.level, Writer: &bytes.Buffer{}}).GetLevel(); got != c.want {
			t.Errorf("level %q = %v", c.level, got)
		}
	}

	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "json", Service: "rss3-feed-api", Writer: &buf})
	l.Info().Str("account", "vitalik.eth").Msg("page fetched")
	l.Debug().Msg("dropped")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("one json line expected, got %q: %v", buf.String(), err)
	}
	if line["service"] != "rss3-feed-api" || line["account"] != "vitalik.eth" || line["message"] != "page fetched" {
		t.Fatalf("line = %v", line)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "console", Writer: &buf})
	l.Info().Str("hash", "0xh").Msg("note classified")
	testkit.MustContain(t, buf.String(), "note classified")
	testkit.MustContain(t, buf.String(), "hash=0xh")
}

func TestC_TagsRequestAndSession(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithRequest(context.Background(), "req-1", "sess-1")
	l := C(ctx).Output(&buf).Level(zerolog.DebugLevel)
	l.Info().Msg("load more")
	testkit.MustContain(t, buf.String(), `"request_id":"req-1"`)
	testkit.MustContain(t, buf.String(), `"session_id":"sess-1"`)

	buf.Reset()
	bare := C(WithRequest(context.Background(), "", "")).Output(&buf).Level(zerolog.DebugLevel)
	bare.Info().Msg("no ids")
	if bytes.Contains(buf.Bytes(), []byte("request_id")) {
		t.Fatalf("unexpected ids: %s", buf.String())
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	l := Named("paginator").Output(&buf).Level(zerolog.DebugLevel)
	l.Info().Msg("x")
	testkit.MustContain(t, buf.String(), `"component":"paginator"`)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "rss3-feed")
	t.Setenv("LOG_CALLER", "true")
	o := FromEnv()
	if o.Level != "warn" || o.Format != "json" || o.Service != "rss3-feed" || !o.Caller {
		t.Fatalf("options = %+v", o)
	}
}
