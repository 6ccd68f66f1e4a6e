package bazarr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds every call to the Bazarr API. The service's own
// transport has no deadline, so an unset timeout would let a single stuck
// call stall the whole run.
const DefaultTimeout = 30 * time.Second

// maxLoggedBody bounds how much of an error response body is carried in
// classified errors and log entries.
const maxLoggedBody = 512

// Client is the single authenticated channel to one Bazarr instance.
// The API key and base address are fixed at construction; every request
// carries the key in the X-API-KEY header.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP traces are written (typically
	// stderr) so stdout stays clean and tests can capture the trace.
	writer  io.Writer
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// apiKeyTransport attaches the fixed X-API-KEY header to every request.
type apiKeyTransport struct {
	base http.RoundTripper
	key  string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-API-KEY", t.key)
	clone.Header.Set("Content-Type", "application/json")
	return t.base.RoundTrip(clone)
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose tracing is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] bazarr api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] bazarr api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] bazarr api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

// NewClient builds a client for the Bazarr instance at baseURL. The URL
// must carry an http or https scheme and a host; a trailing slash is
// stripped so endpoints can be joined with a leading slash.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	o := &options{timeout: DefaultTimeout}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bazarr client: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("bazarr client: base URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("bazarr client: base URL %q has no host", baseURL)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("bazarr client: API key is empty")
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}
	transport = &apiKeyTransport{base: transport, key: strings.TrimSpace(apiKey)}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Transport: transport, Timeout: o.timeout},
		log:     logger,
	}, nil
}

// BaseURL returns the normalized base address the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchJSON performs a single GET against endpoint and returns the raw
// JSON body. Any failure — transport, non-2xx status, or a body that is
// not valid JSON — is logged once with its cause and returned as a
// classified error; callers treat it as "no data, continue", never as a
// fatal condition.
func (c *Client) FetchJSON(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(endpoint, query), nil)
	if err != nil {
		terr := &TransportError{Cause: err}
		c.log.Error("bazarr request could not be built", "endpoint", endpoint, "cause", err)
		return nil, terr
	}

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &TransportError{Cause: err}
		c.log.Error("bazarr request failed", "endpoint", endpoint, "cause", err)
		return nil, terr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Cause: err}
		c.log.Error("bazarr response read failed", "endpoint", endpoint, "cause", err)
		return nil, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := &ProtocolError{Status: resp.StatusCode, Body: snippet(body)}
		c.log.Error("bazarr returned an error status",
			"endpoint", endpoint, "status", resp.StatusCode, "body", perr.Body)
		return nil, perr
	}

	if !json.Valid(body) {
		derr := &DecodeError{Cause: fmt.Errorf("body is not valid JSON"), Body: snippet(body)}
		c.log.Error("bazarr response is not valid JSON", "endpoint", endpoint, "body", derr.Body)
		return nil, derr
	}

	return json.RawMessage(body), nil
}

// IssueAction performs a single state-changing PATCH with all parameters
// in the request target and classifies the outcome. Exactly one attempt
// is made; there is no retry.
func (c *Client) IssueAction(ctx context.Context, endpoint string, query url.Values) ActionOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.requestURL(endpoint, query), nil)
	if err != nil {
		c.log.Error("bazarr action could not be built", "endpoint", endpoint, "cause", err)
		return ActionTransportFailed
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("bazarr action failed", "endpoint", endpoint, "cause", err)
		return ActionTransportFailed
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return ActionSucceeded
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		c.log.Error("bazarr action returned an error status",
			"endpoint", endpoint, "status", resp.StatusCode, "body", snippet(body))
		return ActionTransportFailed
	default:
		return ActionRejected
	}
}

func (c *Client) requestURL(endpoint string, query url.Values) string {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody] + "..."
	}
	return s
}
