package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// eventAdapter adapts zerolog events to the LogEvent interface, routing
// header maps through the mask before they are written.
type eventAdapter struct {
	event *zerolog.Event
	mask  *HeaderMask
}

func (e *eventAdapter) Msg(msg string) {
	e.event.Msg(msg)
}

func (e *eventAdapter) Msgf(format string, args ...any) {
	e.event.Msgf(format, args...)
}

func (e *eventAdapter) Err(err error) LogEvent {
	return &eventAdapter{event: e.event.Err(err), mask: e.mask}
}

func (e *eventAdapter) Str(key, value string) LogEvent {
	return &eventAdapter{event: e.event.Str(key, value), mask: e.mask}
}

func (e *eventAdapter) Int(key string, value int) LogEvent {
	return &eventAdapter{event: e.event.Int(key, value), mask: e.mask}
}

func (e *eventAdapter) Int64(key string, value int64) LogEvent {
	return &eventAdapter{event: e.event.Int64(key, value), mask: e.mask}
}

func (e *eventAdapter) Float64(key string, value float64) LogEvent {
	return &eventAdapter{event: e.event.Float64(key, value), mask: e.mask}
}

func (e *eventAdapter) Dur(key string, d time.Duration) LogEvent {
	return &eventAdapter{event: e.event.Dur(key, d), mask: e.mask}
}

func (e *eventAdapter) Bytes(key string, val []byte) LogEvent {
	return &eventAdapter{event: e.event.Bytes(key, val), mask: e.mask}
}

func (e *eventAdapter) Interface(key string, i any) LogEvent {
	if e.mask != nil {
		if headers, ok := i.(map[string]string); ok {
			i = e.mask.Apply(headers)
		}
	}
	return &eventAdapter{event: e.event.Interface(key, i), mask: e.mask}
}
