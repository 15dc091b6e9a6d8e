package fetch

// Notifier receives request lifecycle events for display: loader toggling,
// upload/download progress, and human-readable outcome messages. For a
// single Send with all flags enabled the order is EnableLoader, zero or more
// UpdateProgress calls, at most one Notify, DisableLoader. Implementations
// must tolerate interleaved events from concurrent Send calls.
type Notifier interface {
	EnableLoader()
	DisableLoader()
	// UpdateProgress reports completion in [0, 1].
	UpdateProgress(fraction float64)
	// Notify delivers a user-facing message about the request outcome.
	Notify(message string)
}

// NopNotifier discards all events. It is the default sink when a client is
// built without one.
type NopNotifier struct{}

func (NopNotifier) EnableLoader()            {}
func (NopNotifier) DisableLoader()           {}
func (NopNotifier) UpdateProgress(_ float64) {}
func (NopNotifier) Notify(_ string)          {}
