// Package fetchtest provides test doubles for the fetch package: a
// scripted transport and a recording notification sink.
package fetchtest

import (
	"context"
	"sync"

	"github.com/gaborage/go-fetch/fetch"
)

// Outcome is one scripted transport result.
type Outcome struct {
	Response *fetch.TransportResponse
	Err      error
}

// Respond builds an Outcome returning the given status and body.
func Respond(status int, body string) Outcome {
	return Outcome{Response: &fetch.TransportResponse{
		Status:  status,
		Headers: fetch.NewHeaders(),
		Body:    body,
	}}
}

// RespondHeaders is Respond with response headers.
func RespondHeaders(status int, body string, headers map[string]string) Outcome {
	h := fetch.NewHeaders()
	for k, v := range headers {
		h.Set(k, v)
	}
	return Outcome{Response: &fetch.TransportResponse{Status: status, Headers: h, Body: body}}
}

// Fail builds an Outcome returning err.
func Fail(err error) Outcome {
	return Outcome{Err: err}
}

// StubTransport replays scripted outcomes in order and records every
// request it sees. When the script is exhausted the last outcome repeats,
// which makes permanently-failing transports trivial to express. Safe for
// concurrent use.
type StubTransport struct {
	mu       sync.Mutex
	outcomes []Outcome
	calls    int
	requests []*fetch.TransportRequest
}

// NewStubTransport creates a stub that replays the given outcomes.
func NewStubTransport(outcomes ...Outcome) *StubTransport {
	return &StubTransport{outcomes: outcomes}
}

// Queue appends outcomes to the script.
func (s *StubTransport) Queue(outcomes ...Outcome) *StubTransport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcomes...)
	return s
}

// RoundTrip returns the next scripted outcome.
func (s *StubTransport) RoundTrip(_ context.Context, req *fetch.TransportRequest) (*fetch.TransportResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.outcomes) == 0 {
		panic("fetchtest: StubTransport has no scripted outcomes")
	}
	idx := s.calls
	if idx >= len(s.outcomes) {
		idx = len(s.outcomes) - 1
	}
	s.calls++
	s.requests = append(s.requests, req)

	out := s.outcomes[idx]
	return out.Response, out.Err
}

// Calls returns how many times RoundTrip was invoked.
func (s *StubTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Requests returns the captured transport requests in arrival order.
func (s *StubTransport) Requests() []*fetch.TransportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*fetch.TransportRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent captured request, or nil.
func (s *StubTransport) LastRequest() *fetch.TransportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}
