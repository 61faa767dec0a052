package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hoardcache/hoard"
)

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	c, err := hoard.New(hoard.Options{
		ReapInterval:  time.Hour,
		EvictInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("hoard.New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return New(c, opts)
}

func do(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestJSONSetThenGet(t *testing.T) {
	h := newTestHandler(t, Options{})

	rec := do(h, http.MethodPost, "/greeting", "application/json", `{"value":"hello","ttl":60}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first POST status = %d, want 201: %s", rec.Code, rec.Body)
	}

	rec = do(h, http.MethodPost, "/greeting", "application/json", `{"value":"hej"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("overwrite POST status = %d, want 200", rec.Code)
	}

	rec = do(h, http.MethodGet, "/greeting", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "hej" {
		t.Fatalf("GET body = %q, want %q", got, "hej")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Fatalf("GET content type = %q", ct)
	}
}

func TestRawSetWithTTLQuery(t *testing.T) {
	h := newTestHandler(t, Options{})

	// Binary-safe path: body is the value verbatim.
	raw := "\x00\x01binary\xff"
	rec := do(h, http.MethodPost, "/blob?ttl=60", "application/octet-stream", raw)
	if rec.Code != http.StatusCreated {
		t.Fatalf("raw POST status = %d: %s", rec.Code, rec.Body)
	}

	rec = do(h, http.MethodGet, "/blob", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != raw {
		t.Fatalf("raw round-trip: status=%d body=%q", rec.Code, rec.Body)
	}
}

func TestGetMissing(t *testing.T) {
	h := newTestHandler(t, Options{})
	if rec := do(h, http.MethodGet, "/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET missing status = %d, want 404", rec.Code)
	}
}

func TestRejections(t *testing.T) {
	h := newTestHandler(t, Options{MaxPayloadBytes: 32})

	cases := map[string]struct {
		target, ct, body string
	}{
		"malformed json":   {"/k", "application/json", `{"value":`},
		"negative ttl":     {"/k", "application/json", `{"value":"v","ttl":-1}`},
		"non-numeric ttl":  {"/k", "application/json", `{"value":"v","ttl":"soon"}`},
		"bad ttl query":    {"/k?ttl=soon", "text/plain", "v"},
		"negative ttl qry": {"/k?ttl=-5", "text/plain", "v"},
		"oversized json":   {"/k", "application/json", `{"value":"` + strings.Repeat("x", 64) + `"}`},
		"oversized raw":    {"/k", "text/plain", strings.Repeat("x", 64)},
	}
	for name, tc := range cases {
		if rec := do(h, http.MethodPost, tc.target, tc.ct, tc.body); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, rec.Code)
		}
	}

	// Nothing was partially applied.
	if rec := do(h, http.MethodGet, "/k", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("rejected writes must not create entries, GET = %d", rec.Code)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	h := newTestHandler(t, Options{})

	do(h, http.MethodPost, "/k", "application/json", `{"value":"v"}`)
	if rec := do(h, http.MethodDelete, "/k", "", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}
	// Absent key: still success.
	if rec := do(h, http.MethodDelete, "/k", "", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("repeat DELETE status = %d, want 204", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/k", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("GET after DELETE = %d, want 404", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, Options{})
	if rec := do(h, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
}
