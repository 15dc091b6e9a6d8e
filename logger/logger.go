package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger implements Logger on top of rs/zerolog.
type ZeroLogger struct {
	zlog *zerolog.Logger
	mask *HeaderMask
}

var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger writing JSON to stdout at the given level.
// Unknown levels fall back to info. If pretty is true, output is formatted
// for human readability instead.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithWriter(level, pretty, os.Stdout)
}

// NewWithWriter is New with an explicit output writer. Tests use it to
// capture log output.
func NewWithWriter(level string, pretty bool, w io.Writer) *ZeroLogger {
	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).With().Timestamp().Logger()

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l, mask: NewHeaderMask(nil)}
}

// NewWithMask returns a logger that redacts the given header names (in
// addition to the defaults) when header maps are logged.
func NewWithMask(level string, pretty bool, extraSensitive []string) *ZeroLogger {
	l := New(level, pretty)
	l.mask = NewHeaderMask(extraSensitive)
	return l
}

// WithFields returns a logger with fields attached to every entry.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	zl := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &zl, mask: l.mask}
}

func (l *ZeroLogger) Debug() LogEvent {
	return &eventAdapter{event: l.zlog.Debug(), mask: l.mask}
}

func (l *ZeroLogger) Info() LogEvent {
	return &eventAdapter{event: l.zlog.Info(), mask: l.mask}
}

func (l *ZeroLogger) Warn() LogEvent {
	return &eventAdapter{event: l.zlog.Warn(), mask: l.mask}
}

func (l *ZeroLogger) Error() LogEvent {
	return &eventAdapter{event: l.zlog.Error(), mask: l.mask}
}
