// Package logging builds the process logger. Output goes to stderr and is
// limited to warnings unless CODEXMETER_DEBUG is set.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const EnvDebug = "CODEXMETER_DEBUG"

func New(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if v := os.Getenv(EnvDebug); v != "" && v != "0" {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}
