package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tourpref/internal/category"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testPayload() category.Payload {
	return category.Expand(map[category.Category]int{
		category.Buceo: 2,
		category.Aves:  1,
	}, "tourist-1")
}

func TestSubmitPostsFlatJSON(t *testing.T) {
	var (
		gotMethod, gotContentType string
		gotBody                   map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	require.NoError(t, client.Submit(context.Background(), testPayload()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, gotBody, len(category.All())+1)
	assert.Equal(t, "tourist-1", gotBody["TouristID"])
	assert.Equal(t, float64(2), gotBody["buceo"])
	assert.Equal(t, float64(1), gotBody["aves"])
	assert.Equal(t, float64(0), gotBody["piscinas"])
}

func TestSubmitSuccessIgnoresBody(t *testing.T) {
	statuses := []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent}
	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				if status != http.StatusNoContent {
					_, _ = io.WriteString(w, "<html>not json</html>")
				}
			}))
			defer server.Close()

			err := NewClient(server.URL, server.Client()).Submit(context.Background(), testPayload())
			assert.NoError(t, err)
		})
	}
}

func TestSubmitRemoteRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "db down"})
	}))
	defer server.Close()

	err := NewClient(server.URL, server.Client()).Submit(context.Background(), testPayload())
	require.Error(t, err)

	var rejected *RemoteRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected *RemoteRejectedError, got %T (%v)", err, err)
	}
	if rejected.StatusCode != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", rejected.StatusCode, http.StatusInternalServerError)
	}
	assert.Equal(t, "db down", Message(err))
	assert.Equal(t, "rejected", Outcome(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestSubmitMalformedErrorBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>Bad Gateway</html>"},
		{"empty body", ""},
		{"empty error field", `{"error": "  "}`},
		{"missing error field", `{"detail": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			err := NewClient(server.URL, server.Client()).Submit(context.Background(), testPayload())
			require.Error(t, err)

			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
			assert.Equal(t, GenericFailureMessage, Message(err))
			assert.Equal(t, "malformed", Outcome(err))
		})
	}
}

func TestSubmitTransportError(t *testing.T) {
	client := NewClient("http://example.test/preferences", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})

	err := client.Submit(context.Background(), testPayload())
	require.Error(t, err)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport wrapper, got %v", err)
	}
	assert.Contains(t, Message(err), "dial error")
	assert.Equal(t, "transport", Outcome(err))
	assert.Equal(t, 0, StatusCode(err))
}

func TestSubmitTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	httpClient := server.Client()
	httpClient.Timeout = 50 * time.Millisecond

	err := NewClient(server.URL, httpClient).Submit(context.Background(), testPayload())
	require.ErrorIs(t, err, ErrTransport)
}

func TestSubmitSendsExactlyOneRequest(t *testing.T) {
	var calls int
	client := NewClient("http://example.test/preferences", &http.Client{
		Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Body:       io.NopCloser(strings.NewReader(`{"error":"try later"}`)),
				Header:     make(http.Header),
				Request:    r,
			}, nil
		}),
	})

	err := client.Submit(context.Background(), testPayload())
	require.Error(t, err)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("  http://example.test/p  ", nil)
	assert.Equal(t, "http://example.test/p", c.Endpoint())
	assert.Same(t, http.DefaultClient, c.httpClient)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"rejected", &RemoteRejectedError{StatusCode: 500, Message: "db down"}, "db down"},
		{"malformed", &MalformedResponseError{StatusCode: 502}, GenericFailureMessage},
		{"transport", &TransportError{Err: errors.New("connection refused")}, "connection refused"},
		{"wrapped rejected", errors.Join(errors.New("ctx"), &RemoteRejectedError{Message: "bad"}), "bad"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
