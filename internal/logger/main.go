// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter routes events by level: trace, warn, error and up each get
// their own writer, debug and info share InfoWriter. A nil writer drops
// the events of its level group.
type LevelWriter struct {
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// Write handles events without a level like info events.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.WriteLevel(zerolog.InfoLevel, p)
}

// WriteLevel writes p to the writer of level l.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	w := lw.target(l)
	if w == nil {
		return len(p), nil
	}

	return w.Write(p) //nolint:wrapcheck
}

func (lw *LevelWriter) target(l zerolog.Level) io.Writer {
	switch {
	case l == zerolog.TraceLevel:
		return lw.TraceWriter
	case l == zerolog.WarnLevel:
		return lw.WarnWriter
	case l > zerolog.WarnLevel: // error, fatal and panic
		return lw.ErrorWriter
	default:
		return lw.InfoWriter
	}
}

// Init the zerolog logger.
// Depending on the config it enables console output, level split rolling
// files, both or nothing at all. The SQL settings are checked here too so a
// bad value fails at startup instead of silently falling back.
func Init(cfg Log) error {
	level, err := check(cfg)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	// stack traces only at trace level
	stack := level == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	log.Logger = newLogger(cfg, Writers(cfg, os.Stdout, os.Stderr), stack)

	return nil
}

// check validates cfg and returns its log level.
func check(cfg Log) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return zerolog.NoLevel, ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return zerolog.NoLevel, ErrAppNameIsEmpty
	}

	if err = cfg.validateSQL(); err != nil {
		return zerolog.NoLevel, errors.Wrap(err, cfg.SQLLogLevel)
	}

	return level, nil
}

func newLogger(cfg Log, writers []io.Writer, stack bool) zerolog.Logger {
	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName)

	if cfg.ReportCaller {
		if stack {
			ctx = ctx.Stack()
		} else {
			ctx = ctx.Caller()
		}
	}

	return ctx.Logger()
}

// Writers returns the outputs cfg enables. Console output goes to stdout
// and stderr. A log directory that can not be created disables file output.
func Writers(cfg Log, stdout, stderr io.Writer) []io.Writer {
	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg, stdout, stderr))
	}

	if cfg.File.Enabled {
		if fw := newRollingInfoErrorFile(cfg); fw != nil {
			writers = append(writers, fw)
		}
	}

	return writers
}

// newRollingInfoErrorFile creates one lumberjack file per level group.
// Level groups without a file name are dropped.
func newRollingInfoErrorFile(cfg Log) io.Writer {
	f := cfg.File

	if err := os.MkdirAll(f.Path, 0o750); err != nil { //nolint: mnd
		log.Error().Err(err).Str("path", f.Path).Msg("can't create log directory")

		return nil
	}

	return &LevelWriter{
		ErrorWriter: rolling(f.Path, f.ErrorLog, f.ErrorMaxSize, f.ErrorMaxAge, f.ErrorMaxBackups),
		InfoWriter:  rolling(f.Path, f.InfoLog, f.InfoMaxSize, f.InfoMaxAge, f.InfoMaxBackups),
		TraceWriter: rolling(f.Path, f.TraceLog, f.TraceMaxSize, f.TraceMaxAge, f.TraceMaxBackups),
		WarnWriter:  rolling(f.Path, f.WarnLog, f.WarnMaxSize, f.WarnMaxAge, f.WarnMaxBackups),
	}
}

func rolling(dir, name string, maxSize, maxAge, maxBackups int) io.Writer {
	if name == "" {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   path.Join(dir, name),
		MaxSize:    maxSize,
		MaxAge:     maxAge,
		MaxBackups: maxBackups,
		LocalTime:  false,
		Compress:   false,
	}
}

// NewConsoleWriter sends debug and info to stdout and everything else to
// stderr, formatted by zerolog.ConsoleWriter when Console.UseConsoleWriter is set.
func NewConsoleWriter(cfg Log, stdout, stderr io.Writer) io.Writer {
	wrap := func(out io.Writer) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return out
		}

		return zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    false,
			TimeFormat: zerolog.TimeFieldFormat,
		}
	}

	return &LevelWriter{
		ErrorWriter: wrap(stderr),
		InfoWriter:  wrap(stdout),
		TraceWriter: wrap(stderr),
		WarnWriter:  wrap(stderr),
	}
}
