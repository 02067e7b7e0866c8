// Package submission delivers a tourist's preference vector to the remote
// preferences service and classifies the result.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/tourpref/internal/category"
)

// maxErrorBody bounds how much of a failed response is read for its error
// field.
const maxErrorBody = 64 << 10

// Submitter sends a payload once. Implementations do not retry.
type Submitter interface {
	Submit(ctx context.Context, payload category.Payload) error

	// Endpoint identifies where payloads go, for logs and event records.
	Endpoint() string
}

// Client posts payloads as JSON to a single endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a Client for endpoint. A nil httpClient uses
// http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: httpClient,
	}
}

// Endpoint returns the URL payloads are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts payload once. Any 2xx status is success and the body is
// ignored. Other statuses yield *RemoteRejectedError when the body carries a
// non-empty "error" field and *MalformedResponseError otherwise. Failures
// before a response arrives are *TransportError.
func (c *Client) Submit(ctx context.Context, payload category.Payload) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return &TransportError{Err: err}
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxErrorBody))
		return nil
	}

	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(response.Body, maxErrorBody)).Decode(&body); err != nil {
		return &MalformedResponseError{StatusCode: response.StatusCode, Err: err}
	}
	if strings.TrimSpace(body.Error) == "" {
		return &MalformedResponseError{StatusCode: response.StatusCode}
	}
	return &RemoteRejectedError{StatusCode: response.StatusCode, Message: body.Error}
}
