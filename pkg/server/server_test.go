package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

const doc = `<table>
<tr><th>x</th><th>char</th><th>y</th></tr>
<tr><td>0</td><td>A</td><td>0</td></tr>
<tr><td>0</td><td>B</td><td>1</td></tr>
<tr><td>2</td><td>C</td><td>1</td></tr>
</table>`

// upstream serves the published documents the server decodes.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc":
			_, _ = io.WriteString(w, doc)
		case "/huge":
			_, _ = io.WriteString(w, `<table><tr><td>9223372036854775807</td><td>A</td><td>0</td></tr></table>`)
		case "/notable":
			_, _ = io.WriteString(w, "<p>nothing</p>")
		case "/broken":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	up := upstream(t)
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard), nil)
	s := New(runner, log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, up.URL
}

func get(t *testing.T, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok\n" {
		t.Errorf("got %d %q", resp.StatusCode, body)
	}
}

func TestVersion(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts.URL+"/version")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(body), &info); err != nil {
		t.Fatalf("invalid json %q: %v", body, err)
	}
	if info["version"] == "" {
		t.Errorf("version missing: %v", info)
	}
}

func TestDecode(t *testing.T) {
	ts, up := newTestServer(t)

	tests := []struct {
		name  string
		query url.Values
		want  string
	}{
		{"default", url.Values{"url": {up + "/doc"}}, "B C\nA  \n"},
		{"fill", url.Values{"url": {up + "/doc"}, "fill": {"."}}, "B.C\nA..\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/decode?"+tt.query.Encode())
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
			if body != tt.want {
				t.Errorf("body = %q, want %q", body, tt.want)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := resp.Header.Get("X-Grid-Size"); got != "3x2" {
				t.Errorf("X-Grid-Size = %q, want 3x2", got)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	ts, up := newTestServer(t)
	q := url.Values{"url": {up + "/doc"}, "format": {"json"}}
	resp, body := get(t, ts.URL+"/decode?"+q.Encode())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var snap pipeline.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Width != 3 || snap.Height != 2 || snap.Lines[0] != "B C" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestTriples(t *testing.T) {
	ts, up := newTestServer(t)
	resp, body := get(t, ts.URL+"/triples?url="+url.QueryEscape(up+"/doc"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var got triplesResponse
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 3 || got.Triples[2] != (tripleJSON{X: 2, Y: 1, Char: "C"}) {
		t.Errorf("triples = %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	ts, up := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing url", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad scheme", "url=" + url.QueryEscape("file:///etc/passwd"), http.StatusBadRequest, "INVALID_INPUT"},
		{"bad fill", "fill=ab&url=" + url.QueryEscape(up+"/doc"), http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "format=svg&url=" + url.QueryEscape(up+"/doc"), http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad refresh", "refresh=maybe&url=" + url.QueryEscape(up+"/doc"), http.StatusBadRequest, "INVALID_INPUT"},
		{"no table", "url=" + url.QueryEscape(up+"/notable"), http.StatusUnprocessableEntity, "INVALID_DOCUMENT"},
		{"coordinate too large", "url=" + url.QueryEscape(up+"/huge"), http.StatusUnprocessableEntity, "INVALID_DOCUMENT"},
		{"not found", "url=" + url.QueryEscape(up+"/gone"), http.StatusNotFound, "NOT_FOUND"},
		{"upstream refused", "url=" + url.QueryEscape(up+"/broken"), http.StatusBadGateway, "NETWORK_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/decode?"+tt.query)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				t.Fatalf("invalid error body %q: %v", body, err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.Error == "" {
				t.Error("empty error message")
			}
			if e.RequestID == "" || e.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id = %q, header %q", e.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := get(t, ts.URL+"/healthz")
	id := resp.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated request id %q is not a UUID: %v", id, err)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(RequestIDHeader, "upstream-42")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "upstream-42" {
		t.Errorf("request id = %q, want the incoming one", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.New(errs.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{errs.New(errs.ErrCodeInvalidDocument, "x"), http.StatusUnprocessableEntity},
		{errs.New(errs.ErrCodeOutOfRange, "x"), http.StatusUnprocessableEntity},
		{errs.New(errs.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errs.New(errs.ErrCodeNetwork, "x"), http.StatusBadGateway},
		{fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("fetch: %w", context.Canceled), StatusClientClosedRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteErrorCancelledHasNoBody(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard), nil), log.New(io.Discard))
	rec := httptest.NewRecorder()
	s.writeError(rec, httptest.NewRequest(http.MethodGet, "/decode", nil), context.Canceled)

	if rec.Code != StatusClientClosedRequest {
		t.Errorf("status = %d, want %d", rec.Code, StatusClientClosedRequest)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard), nil), log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() error: %v", err)
	}
}
