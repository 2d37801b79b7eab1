package stripekit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	// APIVersion is the pinned Stripe-Version header sent on every request.
	APIVersion = "2024-06-20"

	// DefaultBaseURL is the live API origin. Override it with WithBaseURL
	// to point the client at a stub server.
	DefaultBaseURL = "https://api.stripe.com"

	clientName    = "stripekit"
	clientVersion = "0.9.0"

	maxIdempotencyKeyLength = 255
	defaultBlockingTimeout  = 30 * time.Second
)

// AppInfo identifies the calling application inside the User-Agent header.
type AppInfo struct {
	Name    string
	Version string
	URL     string
}

func (a AppInfo) String() string {
	s := a.Name
	if a.Version != "" {
		s += "/" + a.Version
	}
	if a.URL != "" {
		s += " (" + a.URL + ")"
	}
	return s
}

// Client holds the credentials and defaults shared by every call. It is
// immutable once handed out and safe for concurrent use; the underlying
// connection pool is shared across all requests.
type Client struct {
	secret     string
	baseURL    string
	apiVersion string
	account    string
	appInfo    *AppInfo
	strategy   RequestStrategy
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
	userAgent  string
}

// New returns a client authenticating with the given secret key. Configure
// it by chaining With options before first use:
//
//	c := stripekit.New(key).
//		WithAccount("acct_123").
//		WithStrategy(stripekit.ExponentialBackoff(3))
func New(secret string) *Client {
	c := &Client{
		secret:     secret,
		baseURL:    DefaultBaseURL,
		apiVersion: APIVersion,
		strategy:   Once(),
		httpClient: &http.Client{},
		timeout:    defaultBlockingTimeout,
	}
	c.userAgent = c.buildUserAgent()
	return c
}

// WithAPIVersion overrides the pinned Stripe-Version header.
func (c *Client) WithAPIVersion(version string) *Client {
	c.apiVersion = version
	return c
}

// WithAccount makes every request act on behalf of a connected account via
// the Stripe-Account header.
func (c *Client) WithAccount(account string) *Client {
	c.account = account
	return c
}

// WithBaseURL points the client at a different origin, typically a stub
// server in tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimSuffix(base, "/")
	return c
}

// WithAppInfo appends application identification to the User-Agent header.
func (c *Client) WithAppInfo(info AppInfo) *Client {
	c.appInfo = &info
	c.userAgent = c.buildUserAgent()
	return c
}

// WithStrategy sets the default request strategy. Individual calls can
// override it through their Customize method.
func (c *Client) WithStrategy(s RequestStrategy) *Client {
	c.strategy = s
	return c
}

// WithHTTPClient substitutes the underlying HTTP client, e.g. to configure
// proxies or transport-level timeouts.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithLogger sets the logger used for retry tracing. If unset,
// slog.Default() is used. The secret is never logged.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	c.logger = l
	return c
}

// WithTimeout bounds blocking calls made without a caller context.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

func (c *Client) buildUserAgent() string {
	ua := fmt.Sprintf("%s/%s (%s; %s/%s)", clientName, clientVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if c.appInfo != nil {
		ua += " " + c.appInfo.String()
	}
	return ua
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// execute runs the retry loop for one logical call and returns the raw
// 2xx response body. All failures come back as *Error.
func (c *Client) execute(ctx context.Context, req *Request) ([]byte, error) {
	strategy := c.strategy
	if req.Strategy != nil {
		strategy = *req.Strategy
	}

	key, err := c.idempotencyKeyFor(req, strategy)
	if err != nil {
		return nil, err
	}

	if strategy.maxElapsed > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, strategy.maxElapsed)
		defer cancel()
	}

	url := c.baseURL + req.Path
	if !req.Query.Empty() {
		url += "?" + req.Query.Encode()
	}
	var body string
	if !req.Form.Empty() {
		body = req.Form.Encode()
	}

	attempts := 0
	var lastErr *Error
	for {
		if err := ctx.Err(); err != nil {
			return nil, newTransportError("cancelled", err)
		}

		respBody, result := c.attempt(ctx, req, url, body, key)
		attempts++
		if result == nil {
			return respBody, nil
		}
		lastErr = result.err

		retry := lastErr.Retryable()
		if result.shouldRetryHeader != nil {
			// Stripe-Should-Retry overrides the status-based decision in
			// both directions.
			retry = *result.shouldRetryHeader
		}
		if !retry || !strategy.shouldRetry(attempts) {
			return nil, lastErr
		}

		sleep := strategy.sleepFor(attempts - 1)
		if result.retryAfter > 0 {
			sleep = min(result.retryAfter, backoffMax)
		}
		c.log().Debug("stripe request retrying",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("attempts", attempts),
			slog.Duration("sleep", sleep),
			slog.String("error", lastErr.Detail))
		if sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, newTransportError("cancelled during backoff", ctx.Err())
			case <-timer.C:
			}
		}
	}
}

// attemptResult describes one failed attempt.
type attemptResult struct {
	err               *Error
	shouldRetryHeader *bool
	retryAfter        time.Duration
}

func (c *Client) attempt(ctx context.Context, req *Request, url, body, key string) ([]byte, *attemptResult) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, reader)
	if err != nil {
		return nil, &attemptResult{err: clientErrorf("building request: %v", err)}
	}
	c.setHeaders(httpReq, key, body != "")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &attemptResult{err: newTransportError("cancelled", ctx.Err())}
		}
		return nil, &attemptResult{err: newTransportError("sending request", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &attemptResult{err: newTransportError("reading response body", err)}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	result := &attemptResult{
		err: decodeAPIError(resp.StatusCode, respBody, resp.Header.Get("Request-Id")),
	}
	if v := resp.Header.Get("Stripe-Should-Retry"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			result.shouldRetryHeader = &b
		}
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			result.retryAfter = time.Duration(secs) * time.Second
		}
	}
	return nil, result
}

func (c *Client) idempotencyKeyFor(req *Request, strategy RequestStrategy) (string, error) {
	key := req.IdempotencyKey
	if key == "" {
		key = strategy.key
	}
	if key == "" && strategy.retries() && req.Method != http.MethodGet {
		// Mutations are only retried under an idempotency key; synthesize
		// one that stays constant across the attempts of this call.
		key = newIdempotencyKey()
	}
	if len(key) > maxIdempotencyKeyLength {
		return "", clientErrorf("idempotency key exceeds %d bytes", maxIdempotencyKeyLength)
	}
	return key, nil
}

func (c *Client) setHeaders(httpReq *http.Request, key string, hasBody bool) {
	httpReq.SetBasicAuth(c.secret, "")
	httpReq.Header.Set("Stripe-Version", c.apiVersion)
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.account != "" {
		httpReq.Header.Set("Stripe-Account", c.account)
	}
	if key != "" {
		httpReq.Header.Set("Idempotency-Key", key)
	}
	if hasBody {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
}

func decodeAPIError(status int, body []byte, requestID string) *Error {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return &Error{
			Kind:      KindAPI,
			Status:    status,
			Detail:    "malformed_error_response",
			RawBody:   body,
			RequestID: requestID,
		}
	}
	return &Error{Kind: KindAPI, Status: status, API: envelope.Error, RequestID: requestID}
}
