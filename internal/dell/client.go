package dell

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dxbtools/admintools/internal/httpclient"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrLogin is returned when the controller refuses the credentials.
var ErrLogin = errors.New("dell: login rejected")

const toolName = "dell-query"

// Reports are the show commands in the order a full query runs them.
var Reports = []string{"controllers", "enclosures", "fan-modules", "power-supplies", "sensor-status"}

// AuthHash is the login token the controller expects: the SHA-256 of user
// and password concatenated.
func AuthHash(user, password string) string {
	sum := sha256.Sum256([]byte(user + password))
	return hex.EncodeToString(sum[:])
}

type loginResponse struct {
	Status []struct {
		ResponseType string `json:"response-type"`
		Response     string `json:"response"`
	} `json:"status"`
}

// Client talks to one storage array management controller.
type Client struct {
	http       *retryablehttp.Client
	base       string
	sessionKey string
}

// NewClient prepares a client for the controller at base.
func NewClient(base string, hc *retryablehttp.Client) *Client {
	return &Client{http: hc, base: strings.TrimRight(base, "/")}
}

// Login obtains a session key.
func (c *Client) Login(ctx context.Context, user, password string) error {
	body, err := c.get(ctx, "/api/login/"+AuthHash(user, password), map[string]string{"datatype": "json"})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}
	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrLogin, err)
	}
	if len(resp.Status) == 0 {
		return fmt.Errorf("%w: empty status", ErrLogin)
	}
	st := resp.Status[0]
	if st.ResponseType != "Success" {
		return fmt.Errorf("%w: %s", ErrLogin, st.Response)
	}
	c.sessionKey = st.Response
	return nil
}

// Show runs one report. asJSON selects the json data type over console text.
func (c *Client) Show(ctx context.Context, report string, asJSON bool) ([]byte, error) {
	if c.sessionKey == "" {
		return nil, errors.New("dell: not logged in")
	}
	datatype := "console"
	if asJSON {
		datatype = "json"
	}
	return c.get(ctx, "/api/show/"+report, map[string]string{"sessionKey": c.sessionKey, "datatype": datatype})
}

func (c *Client) get(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	events.Tool.Request(toolName, http.MethodGet, c.base+RedactPath(path))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, scrub(err, path)
	}
	defer httpclient.EmptyAndCloseBody(resp)
	events.Tool.Response(toolName, c.base, resp.StatusCode)
	if err := httpclient.CheckStatus(resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// RedactPath hides the credential hash in login paths. It is meant for
// httpclient.Options.RedactPath.
func RedactPath(path string) string {
	if strings.HasPrefix(path, "/api/login/") {
		return "/api/login/..."
	}
	return path
}

// scrubbedError carries a transport error whose text named the login hash.
type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }

func scrub(err error, path string) error {
	hidden := RedactPath(path)
	if hidden == path || !strings.Contains(err.Error(), path) {
		return err
	}
	return &scrubbedError{msg: strings.ReplaceAll(err.Error(), path, hidden), err: err}
}
