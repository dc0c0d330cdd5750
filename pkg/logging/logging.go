package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/synrais/padmap/pkg/config"
)

// Settings selects the log sinks. File logging is what [Options] Log turns
// on, console logging is [Options] Console.
type Settings struct {
	File    bool
	Console bool
	Dir     string
	Level   slog.Level

	// Stderr replaces os.Stderr for the console sink, mainly for tests.
	Stderr io.Writer
}

// FromOptions builds Settings from the [Options] section, placing the log
// file in dir.
func FromOptions(opts config.Options, dir string) Settings {
	return Settings{
		File:    opts.Log,
		Console: opts.Console,
		Dir:     dir,
		Level:   slog.LevelInfo,
	}
}

// New returns a logger writing to the selected sinks, and a closer for the
// log file. With no sink selected the logger discards everything.
func New(s Settings) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if s.File {
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(s.Dir, config.LogFileName),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, lj)
		closer = lj
	}
	if s.Console {
		stderr := s.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.Level})
	return slog.New(h), closer
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
