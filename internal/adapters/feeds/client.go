package feeds

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrFetchFailed is returned for non-2xx responses.
	ErrFetchFailed = errors.New("Fetch failed")
	// ErrUnexpectedShape is returned when the payload lacks the expected array.
	ErrUnexpectedShape = errors.New("Unexpected response shape")
)

// maxErrorBody caps how much of a failed response is echoed into errors.
const maxErrorBody = 4096

// NewHTTPClient returns an http.Client instrumented with OpenTelemetry.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

// fetchArray GETs url and returns the raw JSON elements of the array held
// in the top-level field named field.
func fetchArray(ctx context.Context, client *http.Client, url, field string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w (%d): %s", ErrFetchFailed, resp.StatusCode, string(body))
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}

	raw, ok := envelope[field]
	if !ok || !isArray(raw) {
		return nil, fmt.Errorf("%w: missing %s[]", ErrUnexpectedShape, field)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return items, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
