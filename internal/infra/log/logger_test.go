package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guild/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseLogLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_AppendsToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registro_gremio.log")
	require.NoError(t, os.WriteFile(path, []byte("previous line\n"), 0o600))

	cfg := config.Default()
	cfg.Env.Log.File = path

	lc := fxtest.NewLifecycle(t)
	logger, err := New(Params{Lc: lc, Config: cfg})
	require.NoError(t, err)

	lc.RequireStart()
	logger.Info("hero recruited", "name", "Aria")
	logger.Debug("hidden at info level")
	lc.RequireStop()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "previous line", lines[0])
	assert.Contains(t, lines[1], "level=INFO")
	assert.Contains(t, lines[1], `msg="hero recruited"`)
	assert.Contains(t, lines[1], "name=Aria")
}

func TestNew_UnknownLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Env.Log.File = filepath.Join(t.TempDir(), "guild.log")
	cfg.Env.Log.Level = "loud"

	_, err := New(Params{Lc: fxtest.NewLifecycle(t), Config: cfg})
	require.Error(t, err)
}

func TestNew_UnopenableFileFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Env.Log.File = t.TempDir()

	logger, err := New(Params{Lc: fxtest.NewLifecycle(t), Config: cfg})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Log{Pretty: false, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("hero dismissed permanently", "name", "Aria")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "hero dismissed permanently", entry["msg"])
	assert.Equal(t, "Aria", entry["name"])
}

func TestOpenSink_EmptyPathIsStderr(t *testing.T) {
	t.Parallel()

	sink, closeSink := openSink("  ")
	assert.Equal(t, os.Stderr, sink)
	require.NoError(t, closeSink())
}
