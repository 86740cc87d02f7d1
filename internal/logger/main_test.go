package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/appsettings/internal/logger"
)

// keepGlobals restores the zerolog globals Init touches.
func keepGlobals(t *testing.T) {
	t.Helper()

	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestInit(t *testing.T) {
	valid := logger.Log{LogLevel: "info", ServiceName: "test", AppName: "test"}

	tests := []struct {
		name    string
		mutate  func(cfg *logger.Log)
		wantErr error
		wantAny bool
	}{
		{name: "valid without outputs", mutate: func(*logger.Log) {}},
		{name: "empty level accepted", mutate: func(cfg *logger.Log) { cfg.LogLevel = "" }},
		{name: "unknown level", mutate: func(cfg *logger.Log) { cfg.LogLevel = "chatty" }, wantAny: true},
		{
			name:    "missing service name",
			mutate:  func(cfg *logger.Log) { cfg.ServiceName = "" },
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			mutate:  func(cfg *logger.Log) { cfg.AppName = "" },
			wantErr: logger.ErrAppNameIsEmpty,
		},
		{
			name:    "unknown sql level",
			mutate:  func(cfg *logger.Log) { cfg.SQLLogLevel = "debug" },
			wantErr: logger.ErrSQLLogLevelUnknown,
		},
		{
			name:    "negative slow query",
			mutate:  func(cfg *logger.Log) { cfg.SlowQueryMs = -1 },
			wantErr: logger.ErrSlowQueryNegative,
		},
		{name: "sql info", mutate: func(cfg *logger.Log) { cfg.SQLLogLevel = logger.SQLLevelInfo }},
		{name: "trace with caller", mutate: func(cfg *logger.Log) { cfg.LogLevel = "trace"; cfg.ReportCaller = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keepGlobals(t)

			cfg := valid
			tt.mutate(&cfg)

			err := logger.Init(cfg)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestConsoleWriterSplitsLevels(t *testing.T) {
	keepGlobals(t)

	var stdout, stderr bytes.Buffer

	l := zerolog.New(logger.NewConsoleWriter(logger.Log{}, &stdout, &stderr))

	l.Info().Msg("info line")
	l.Debug().Msg("debug line")
	assert.Contains(t, stdout.String(), "info line")
	assert.Contains(t, stdout.String(), "debug line")
	assert.Empty(t, stderr.String())

	l.Warn().Msg("warn line")
	l.Error().Msg("error line")
	l.Trace().Msg("trace line")
	assert.Contains(t, stderr.String(), "warn line")
	assert.Contains(t, stderr.String(), "error line")
	assert.Contains(t, stderr.String(), "trace line")
	assert.NotContains(t, stdout.String(), "error line")

	for _, line := range bytes.Split(bytes.TrimSpace(stdout.Bytes()), []byte("\n")) {
		assert.True(t, json.Valid(line), string(line))
	}
}

func TestConsoleWriterPretty(t *testing.T) {
	keepGlobals(t)

	var stdout, stderr bytes.Buffer

	cfg := logger.Log{Console: logger.Console{Enabled: true, UseConsoleWriter: true}}
	l := zerolog.New(logger.NewConsoleWriter(cfg, &stdout, &stderr))

	l.Info().Msg("pretty line")
	assert.Contains(t, stdout.String(), "pretty line")
	assert.False(t, json.Valid(bytes.TrimSpace(stdout.Bytes())))
}

func TestLevelWriterDropsUnsetGroups(t *testing.T) {
	var info bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info}

	n, err := lw.WriteLevel(zerolog.ErrorLevel, []byte("dropped"))
	require.NoError(t, err)
	assert.Equal(t, len("dropped"), n)

	n, err = lw.WriteLevel(zerolog.Disabled, []byte("disabled"))
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = lw.Write([]byte("kept"))
	require.NoError(t, err)
	assert.Equal(t, "kept", info.String())
}

func TestWritersFileLogging(t *testing.T) {
	keepGlobals(t)

	dir := filepath.Join(t.TempDir(), "log")
	cfg := logger.Log{File: logger.LogFile{
		Enabled:  true,
		Path:     dir,
		InfoLog:  "info.log",
		ErrorLog: "error.log",
	}}

	writers := logger.Writers(cfg, nil, nil)
	require.Len(t, writers, 1)

	l := zerolog.New(zerolog.MultiLevelWriter(writers...))
	l.Info().Msg("to info file")
	l.Error().Msg("to error file")
	l.Warn().Msg("nowhere")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to info file")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "to error file")
	assert.NotContains(t, string(errLog), "nowhere")

	_, err = os.Stat(filepath.Join(dir, "warn.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestWritersLogDirNotCreatable(t *testing.T) {
	keepGlobals(t)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	cfg := logger.Log{File: logger.LogFile{Enabled: true, Path: filepath.Join(blocker, "log"), InfoLog: "info.log"}}
	assert.Empty(t, logger.Writers(cfg, nil, nil))

	var stdout bytes.Buffer

	cfg.Console.Enabled = true
	assert.Len(t, logger.Writers(cfg, &stdout, &stdout), 1)
}
