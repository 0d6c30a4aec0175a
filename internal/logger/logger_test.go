package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", ServiceName: "portal", Output: &buf})
	log.Info().Str("user_id", "u1").Msg("login")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%s)", err, buf.String())
	}
	if entry["service"] != "portal" || entry["user_id"] != "u1" || entry["message"] != "login" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", ServiceName: "portal", Output: &buf})
	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %s", buf.String())
	}

	buf.Reset()
	log = New(Config{Level: "nonsense", ServiceName: "portal", Output: &buf})
	log.Debug().Msg("dropped")
	log.Info().Msg("kept")
	if buf.Len() == 0 {
		t.Fatal("unknown level should default to info")
	}
}
