// Package httpapi is the request boundary for a hoard engine. It performs no
// caching logic itself: it validates input, translates HTTP requests into
// engine calls, and maps results to status codes.
//
// Surface:
//
//	GET    /{key}        200 raw value | 404 absent or expired
//	POST   /{key}        JSON {"value": <string>, "ttl": <seconds>} or a raw
//	                     body with optional ?ttl= - 201 created, 200
//	                     overwritten, 400 rejected
//	DELETE /{key}        204 always (idempotent)
//	GET    /healthz      200
//
// The raw-body POST form exists so binary values round-trip without base64;
// a body with Content-Type application/json uses the JSON envelope.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hoardcache/hoard"
)

// Options tune the boundary. All fields are optional.
type Options struct {
	MaxPayloadBytes int          // 0 => 1 MiB
	Logger          hoard.Logger // nil => NopLogger
}

const defaultMaxPayload = 1 << 20

type handler struct {
	cache      hoard.Cache
	maxPayload int
	log        hoard.Logger
}

// New returns the HTTP handler for cache.
func New(cache hoard.Cache, opts Options) http.Handler {
	h := &handler{
		cache:      cache,
		maxPayload: opts.MaxPayloadBytes,
		log:        opts.Logger,
	}
	if h.maxPayload <= 0 {
		h.maxPayload = defaultMaxPayload
	}
	if h.log == nil {
		h.log = hoard.NopLogger{}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /{key}", h.get)
	mux.HandleFunc("POST /{key}", h.set)
	mux.HandleFunc("DELETE /{key}", h.delete)
	return mux
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	v, ok := h.cache.Get(key)
	if !ok {
		// Absent and expired look the same from outside; a plain
		// negative result, never a server fault.
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(v)))
	_, _ = w.Write(v)
}

type setRequest struct {
	Value string `json:"value"`
	TTL   *int64 `json:"ttl,omitempty"` // seconds
}

type setResponse struct {
	Created bool `json:"created"`
}

func (h *handler) set(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "empty key", http.StatusBadRequest)
		return
	}

	value, ttl, ok := h.readValue(w, r)
	if !ok {
		return
	}
	if len(value) > h.maxPayload {
		http.Error(w, "value exceeds maximum payload size", http.StatusBadRequest)
		return
	}

	created, err := h.cache.Set(key, value, ttl)
	if err != nil {
		var tooLarge *hoard.ValueTooLargeError
		if errors.Is(err, hoard.ErrEmptyKey) || errors.As(err, &tooLarge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("set failed", hoard.Fields{"key": key, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(setResponse{Created: created})
}

// readValue parses the value and TTL from either request form. On failure it
// writes the 400 and returns ok=false.
func (h *handler) readValue(w http.ResponseWriter, r *http.Request) ([]byte, time.Duration, bool) {
	// Headroom over the payload limit: JSON escaping inflates the body,
	// and the raw path needs one extra byte to detect overflow.
	body := http.MaxBytesReader(w, r.Body, int64(h.maxPayload)*2+512)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req setRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			http.Error(w, "malformed body", http.StatusBadRequest)
			return nil, 0, false
		}
		var ttl time.Duration
		if req.TTL != nil {
			if *req.TTL < 0 {
				http.Error(w, "invalid ttl", http.StatusBadRequest)
				return nil, 0, false
			}
			ttl = time.Duration(*req.TTL) * time.Second
		}
		return []byte(req.Value), ttl, true
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, "value exceeds maximum payload size", http.StatusBadRequest)
		return nil, 0, false
	}
	var ttl time.Duration
	if q := r.URL.Query().Get("ttl"); q != "" {
		secs, err := strconv.ParseInt(q, 10, 64)
		if err != nil || secs < 0 {
			http.Error(w, "invalid ttl", http.StatusBadRequest)
			return nil, 0, false
		}
		ttl = time.Duration(secs) * time.Second
	}
	return raw, ttl, true
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	h.cache.Delete(r.PathValue("key"))
	w.WriteHeader(http.StatusNoContent)
}
