package fetchtest

import "sync"

// EventKind identifies a recorded notification event.
type EventKind string

const (
	LoaderOn  EventKind = "loader_on"
	LoaderOff EventKind = "loader_off"
	Progress  EventKind = "progress"
	Message   EventKind = "message"
)

// Event is one recorded notification.
type Event struct {
	Kind     EventKind
	Progress float64
	Message  string
}

// RecordingNotifier captures lifecycle events in arrival order. Safe for
// concurrent use.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

// NewRecordingNotifier creates an empty recorder.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) EnableLoader() {
	n.record(Event{Kind: LoaderOn})
}

func (n *RecordingNotifier) DisableLoader() {
	n.record(Event{Kind: LoaderOff})
}

func (n *RecordingNotifier) UpdateProgress(fraction float64) {
	n.record(Event{Kind: Progress, Progress: fraction})
}

func (n *RecordingNotifier) Notify(message string) {
	n.record(Event{Kind: Message, Message: message})
}

func (n *RecordingNotifier) record(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

// Events returns a copy of the recorded events in order.
func (n *RecordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Event, len(n.events))
	copy(out, n.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (n *RecordingNotifier) Count(kind EventKind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, e := range n.events {
		if e.Kind == kind {
			count++
		}
	}
	return count
}

// Messages returns the recorded user-facing messages in order.
func (n *RecordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events {
		if e.Kind == Message {
			out = append(out, e.Message)
		}
	}
	return out
}

// Reset clears all recorded events.
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
