package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// New creates the diagnostic logger. Records go to output through a tint
// handler; color is enabled only when output is a terminal. level may be
// changed after construction, e.g. by the --debug flag.
func New(output io.Writer, level *slog.LevelVar) *slog.Logger {
	handler := tint.NewHandler(output, &tint.Options{
		Level:      level,
		AddSource:  false,
		TimeFormat: "15:04:05.000",
		NoColor:    !IsTerminal(output),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler).With(slog.String("app", "ue4rb"))
}

// NewLevel returns the default level: warnings and errors only
func NewLevel(debug bool) *slog.LevelVar {
	level := &slog.LevelVar{}
	level.Set(slog.LevelWarn)
	if debug {
		level.Set(slog.LevelDebug)
	}
	return level
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys)
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
