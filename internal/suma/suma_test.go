package suma

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var methodPattern = regexp.MustCompile(`<methodName>([^<]+)</methodName>`)

type fakeSystem struct {
	id      int
	name    string
	checkin string
	boot    string
	kernel  string
}

type fakeServer struct {
	*httptest.Server
	mu      sync.Mutex
	calls   map[string]int
	systems []fakeSystem
	fail    bool
}

func newFakeServer(t *testing.T, systems []fakeSystem) *fakeServer {
	t.Helper()
	f := &fakeServer{calls: map[string]int{}, systems: systems}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	m := methodPattern.FindSubmatch(body)
	if m == nil || r.URL.Path != "/rpc/api" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	method := string(m[1])
	f.mu.Lock()
	f.calls[method]++
	fail := f.fail
	f.mu.Unlock()
	if fail {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	var value string
	switch method {
	case "auth.login":
		value = "<string>session-key</string>"
	case "auth.logout":
		value = "<int>1</int>"
	case "system.listSystems":
		var b strings.Builder
		b.WriteString("<array><data>")
		for _, s := range f.systems {
			fmt.Fprintf(&b, "<value><struct>"+
				"<member><name>id</name><value><int>%d</int></value></member>"+
				"<member><name>name</name><value><string>%s</string></value></member>"+
				"<member><name>last_checkin</name><value><dateTime.iso8601>%s</dateTime.iso8601></value></member>"+
				"<member><name>last_boot</name><value><dateTime.iso8601>%s</dateTime.iso8601></value></member>"+
				"</struct></value>", s.id, s.name, s.checkin, s.boot)
		}
		b.WriteString("</data></array>")
		value = b.String()
	case "system.getRunningKernel":
		id := regexp.MustCompile(`<int>(\d+)</int>`).FindSubmatch(body)
		for _, s := range f.systems {
			if id != nil && fmt.Sprint(s.id) == string(id[1]) {
				value = "<string>" + s.kernel + "</string>"
			}
		}
	default:
		http.Error(w, "unknown method", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	fmt.Fprintf(w, `<?xml version="1.0"?><methodResponse><params><param><value>%s</value></param></params></methodResponse>`, value)
}

func (f *fakeServer) setFailing() {
	f.mu.Lock()
	f.fail = true
	f.mu.Unlock()
}

func (f *fakeServer) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func sixSystems() []fakeSystem {
	out := make([]fakeSystem, 0, 6)
	for i := 1; i <= 6; i++ {
		out = append(out, fakeSystem{
			id:      1000 + i,
			name:    fmt.Sprintf("atxusnm0web%02d.example.com", i),
			checkin: "20261016T11:30:00",
			boot:    "20261001T06:15:00",
			kernel:  "5.14.21-150500.55.39-default",
		})
	}
	out[2].checkin = "20261015T08:00:00"
	out[4].kernel = "5.14.21-150500.55.31-default"
	return out
}

func newRunner(f *fakeServer, out, errOut *bytes.Buffer) *Runner {
	return &Runner{
		Config: config.SUMA{
			Servers:      []config.Server{{Name: "ADC", Address: strings.TrimPrefix(f.URL, "http://")}},
			Prefixes:     map[string]string{"at": "ADC"},
			Login:        "report",
			Password:     "secret",
			LatestKernel: "5.14.21-150500.55.39-default",
			CheckinLimit: 2 * time.Hour,
			Path:         "/rpc/api",
		},
		Out:      out,
		Err:      errOut,
		Now:      func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func TestValidateHost(t *testing.T) {
	cfg := config.SUMA{
		Servers:  []config.Server{{Name: "ADC", Address: "10.0.1.79"}, {Name: "BDC", Address: "10.0.2.79"}},
		Prefixes: map[string]string{"at": "ADC", "bt": "BDC"},
	}
	tests := []struct {
		name   string
		host   string
		server string
		reason string
	}{
		{name: "first site", host: "atxusnm0web01", server: "ADC"},
		{name: "second site", host: "btxusnm0db001", server: "BDC"},
		{name: "too short", host: "atxusnm0web1", reason: "(length)"},
		{name: "unknown prefix", host: "ctxusnm0web01", reason: "(ct)"},
		{name: "wrong role", host: "atxuxxm0web01", reason: "(xx)"},
		{name: "wrong class", host: "atxusnx1web01", reason: "(x1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateHost(tt.host, cfg)
			server, ok := res.Value()
			if tt.reason == "" {
				require.True(t, ok, res.Reason())
				assert.Equal(t, tt.server, server.Name)
				return
			}
			require.False(t, ok)
			assert.Contains(t, res.Reason(), tt.reason)
			assert.Equal(t, 1, res.Code())
		})
	}
}

func TestFullListing(t *testing.T) {
	f := newFakeServer(t, sixSystems())
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	require.NoError(t, r.Run(context.Background(), Options{}))

	text := ansi.Strip(out.String())
	assert.Contains(t, text, "_Server_Name_")
	assert.Contains(t, text, "atxusnm0web01")
	assert.NotContains(t, text, "example.com")
	assert.Contains(t, text, "10-16-2026 11:30")
	assert.Contains(t, text, "10-01-2026 06:15")
	assert.Contains(t, text, "Server Count: 6")
	assert.Equal(t, 1, strings.Count(text, "\t\t---"), "one separator after five rows")

	lines := strings.Split(text, "\n")
	var sepAt, web05At, web06At int
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "\t\t---"):
			sepAt = i
		case strings.Contains(line, "web05"):
			web05At = i
		case strings.Contains(line, "web06"):
			web06At = i
		}
	}
	assert.Equal(t, web05At+1, sepAt)
	assert.Equal(t, sepAt+1, web06At)

	assert.Equal(t, 1, f.count("auth.login"))
	assert.Equal(t, 6, f.count("system.getRunningKernel"))
	assert.Equal(t, 1, f.count("auth.logout"))
}

func TestNamesOnly(t *testing.T) {
	f := newFakeServer(t, sixSystems()[:2])
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	require.NoError(t, r.Run(context.Background(), Options{NamesOnly: true}))

	assert.Equal(t, "atxusnm0web01\natxusnm0web02\n", out.String())
	assert.Zero(t, f.count("system.getRunningKernel"))
	assert.Equal(t, 1, f.count("auth.logout"))
}

func TestCheckinSeconds(t *testing.T) {
	f := newFakeServer(t, sixSystems())
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	require.NoError(t, r.Run(context.Background(), Options{Host: "atxusnm0web03"}))

	assert.Equal(t, "100800\n", out.String())
	assert.Zero(t, f.count("system.getRunningKernel"))
	assert.Equal(t, 1, f.count("auth.logout"))
}

func TestCheckinReadsLocalWallClock(t *testing.T) {
	f := newFakeServer(t, sixSystems())
	var out bytes.Buffer
	r := newRunner(f, &out, nil)
	r.Location = time.FixedZone("UTC+1", 3600)

	require.NoError(t, r.Run(context.Background(), Options{Host: "atxusnm0web01"}))

	// 11:30 at UTC+1 is 10:30 UTC, ninety minutes before noon.
	assert.Equal(t, "5400\n", out.String())
}

func TestCheckinUnknownHostPrintsZero(t *testing.T) {
	f := newFakeServer(t, sixSystems())
	var out, errOut bytes.Buffer
	r := newRunner(f, &out, &errOut)

	require.NoError(t, r.Run(context.Background(), Options{Host: "atxusnm0web07", Debug: true}))

	assert.Equal(t, "0\n", out.String())
	assert.Contains(t, ansi.Strip(errOut.String()), "did you mean")
}

func TestCheckinFailurePrintsZero(t *testing.T) {
	f := newFakeServer(t, sixSystems())
	f.setFailing()
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	require.NoError(t, r.Run(context.Background(), Options{Host: "atxusnm0web01"}))

	assert.Equal(t, "0\n", out.String())
}

func TestListingFailureIsReported(t *testing.T) {
	f := newFakeServer(t, sixSystems())
	f.setFailing()
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	err := r.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADC")
}

func TestInvalidHostExitsOne(t *testing.T) {
	f := newFakeServer(t, nil)
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	err := r.Run(context.Background(), Options{Host: "nope"})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Code)
	assert.Empty(t, out.String())
	assert.Zero(t, f.count("auth.login"))
}

func TestHostAndNamesConflict(t *testing.T) {
	f := newFakeServer(t, nil)
	var out bytes.Buffer
	r := newRunner(f, &out, nil)

	err := r.Run(context.Background(), Options{Host: "atxusnm0web01", NamesOnly: true})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Code)
}
