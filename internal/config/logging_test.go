package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogWithLogger_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: TransportStdio,
		Host:      "localhost",
		Port:      8080,
		Auth:      AuthSettings{Type: AuthTypeNone},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no host in log output for stdio transport")
	}
	if !strings.Contains(output, "(bundled)") {
		t.Error("Expected bundled data dir in log output")
	}
}

func TestLogWithLogger_SSETransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: TransportSSE,
		Host:      "localhost",
		Port:      8080,
		Auth:      AuthSettings{Type: AuthTypeNone},
		Data:      DataSettings{Dir: "/srv/records"},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	for _, want := range []string{"Config: host", "Config: port", "/srv/records"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in log output", want)
		}
	}
}

func TestLogWithLogger_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogWithLogger(&Settings{
		Transport: TransportStdio,
		Auth: AuthSettings{
			Type:  AuthTypeBasic,
			Basic: BasicAuthSettings{Username: "admin", Password: "hunter2"},
		},
	}, logger)
	LogWithLogger(&Settings{
		Transport: TransportStdio,
		Auth:      AuthSettings{Type: AuthTypeAPIKey, APIKeys: []string{"secret-key"}},
	}, logger)

	output := buf.String()
	if strings.Contains(output, "hunter2") || strings.Contains(output, "secret-key") {
		t.Errorf("Expected secrets to be masked, got %s", output)
	}
	if !strings.Contains(output, "admin") {
		t.Error("Expected username in log output")
	}
}

func TestSettingsLogValue_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	s := Settings{
		Transport: TransportSSE,
		Auth: AuthSettings{
			Type:    AuthTypeAPIKey,
			Basic:   BasicAuthSettings{Username: "u", Password: "p4ss"},
			APIKeys: []string{"k1", "k2"},
		},
	}
	logger.Info("settings", "settings", SettingsLogValue(s))

	output := buf.String()
	if strings.Contains(output, "p4ss") || strings.Contains(output, "k1") {
		t.Errorf("Expected secrets to be masked, got %s", output)
	}
	if strings.Count(output, "****") != 3 {
		t.Errorf("Expected 3 masked values, got %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LogSettings{Level: "warn", Format: LogFormatJSON}, &buf)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line at warn level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if entry["msg"] != "kept" || entry["k"] != "v" {
		t.Errorf("Unexpected entry: %v", entry)
	}

	if _, err := NewLogger(LogSettings{Format: "xml"}, &buf); err == nil {
		t.Error("Expected error for unknown format")
	}
}
