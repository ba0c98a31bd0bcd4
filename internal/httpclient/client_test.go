package httpclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMakesSingleAttempt(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(Options{Timeout: time.Second})
	req, err := retryablehttp.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	EmptyAndCloseBody(resp)

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNewAcceptsSelfSignedWhenInsecure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	req, err := retryablehttp.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := New(Options{Insecure: true}).Do(req)
	require.NoError(t, err)
	EmptyAndCloseBody(resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = New(Options{}).Do(req)
	assert.Error(t, err)
}

func TestCheckStatus(t *testing.T) {
	assert.NoError(t, CheckStatus(&http.Response{StatusCode: http.StatusNoContent}))

	err := CheckStatus(&http.Response{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Contains(t, err.Error(), "401 Unauthorized")
}

func TestLogURLDropsQueryAndCredentials(t *testing.T) {
	u, err := url.Parse("https://admin:pw@array.example:8443/api/login/abc123?datatype=json")
	require.NoError(t, err)

	assert.Equal(t, "https://array.example:8443/api/login/abc123", logURL(u, nil))
	hide := func(string) string { return "/api/login/..." }
	assert.Equal(t, "https://array.example:8443/api/login/...", logURL(u, hide))
}
