// Package httpclient builds the HTTP client shared by the REST and CGI tools.
package httpclient

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/dxbtools/admintools/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Options tunes New.
type Options struct {
	Timeout time.Duration
	// Insecure skips certificate verification. Management controllers and
	// the monitoring server present self-signed certificates.
	Insecure bool
	// RedactPath rewrites request paths before they reach the debug log.
	// Query strings are never logged.
	RedactPath func(path string) string
}

// New returns a client that makes exactly one attempt per request.
func New(opts Options) *retryablehttp.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		MaxIdleConns:          1,
		MaxIdleConnsPerHost:   1,
		IdleConnTimeout:       30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.Insecure,
		},
		TLSHandshakeTimeout: 10 * time.Second,
	}

	client := retryablehttp.NewClient()
	client.CheckRetry = retryablehttp.ErrorPropagatedRetryPolicy
	client.HTTPClient.Transport = tr
	client.HTTPClient.Timeout = timeout
	client.Logger = nil
	client.RetryMax = 0
	client.RequestLogHook = func(_ retryablehttp.Logger, r *http.Request, _ int) {
		logging.L().Debug("http request", zap.String("method", r.Method), zap.String("url", logURL(r.URL, opts.RedactPath)))
	}
	client.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		logging.L().Debug("http response", zap.String("url", logURL(resp.Request.URL, opts.RedactPath)), zap.Int("status", resp.StatusCode))
	}
	return client
}

// logURL keeps scheme, host and path only.
func logURL(u *url.URL, redact func(string) string) string {
	path := u.EscapedPath()
	if redact != nil {
		path = redact(path)
	}
	return u.Scheme + "://" + u.Host + path
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}

// CheckStatus returns a *StatusError unless resp is 2xx.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{Code: resp.StatusCode, Status: resp.Status}
}

// EmptyAndCloseBody drains resp so the connection can be reused.
func EmptyAndCloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
