package submission

import (
	"context"
	"sync"

	"github.com/abhisek/tourpref/internal/category"
)

// MockResponse is a canned result for the Mock submitter. Delay, when
// non-nil, is received from before the result is returned, letting tests
// hold a submission in flight.
type MockResponse struct {
	Err   error
	Delay <-chan struct{}
}

// Mock is a deterministic Submitter for testing. It returns canned results
// in FIFO order (success once the queue is empty) and records all payloads.
type Mock struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []category.Payload
}

// NewMock creates a Mock with the given canned responses.
func NewMock(responses ...MockResponse) *Mock {
	return &Mock{responses: responses}
}

func (m *Mock) Submit(ctx context.Context, payload category.Payload) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, payload)
	var resp MockResponse
	if len(m.responses) > 0 {
		resp = m.responses[0]
		m.responses = m.responses[1:]
	}
	m.mu.Unlock()

	if resp.Delay != nil {
		select {
		case <-resp.Delay:
		case <-ctx.Done():
			return &TransportError{Err: ctx.Err()}
		}
	}
	return resp.Err
}

// Endpoint returns "mock".
func (m *Mock) Endpoint() string {
	return "mock"
}

// CallCount returns the number of Submit calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPayload returns the most recent payload and whether one exists.
func (m *Mock) LastPayload() (category.Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return category.Payload{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
