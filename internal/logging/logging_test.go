package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nvu/mailterm/internal/model"
)

func TestSetupCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mailterm.log")

	closeLog, err := Setup(model.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closeLog()

	log.Info().Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry, got %q", data)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("global level = %v, want debug", zerolog.GlobalLevel())
	}
}

func TestDefaultLogPath(t *testing.T) {
	got := defaultLogPath()
	want := filepath.Join(model.ConfigDir(), "mailterm.log")
	if got != want {
		t.Errorf("defaultLogPath() = %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
