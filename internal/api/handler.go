package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pybash1/bin/internal/auth"
	"github.com/pybash1/bin/internal/config"
	"github.com/pybash1/bin/internal/idgen"
	"github.com/pybash1/bin/internal/metrics"
	"github.com/pybash1/bin/internal/store"
)

// Handler is the HTTP handler for the paste API. It owns no state of its
// own: pastes live in the store, limits come from the config runtime, and
// counters are bumped as requests flow through.
type Handler struct {
	store    *store.Store
	rt       *config.Runtime
	counters *metrics.Counters
	mux      *http.ServeMux
}

// New creates a Handler wired to the given store and registers all routes.
func New(st *store.Store, rt *config.Runtime, c *metrics.Counters) http.Handler {
	h := &Handler{store: st, rt: rt, counters: c, mux: http.NewServeMux()}

	h.mux.HandleFunc("/all", h.listPastes)
	h.mux.HandleFunc("/device", h.newDevice)
	h.mux.HandleFunc("/", h.root) // index, submit, and /{paste} lookups

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// root dispatches the "/" pattern: the index and paste submission live on
// the bare path, everything else is treated as a paste identifier.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.showPaste(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.index(w, r)
	case http.MethodPost:
		h.submitForm(w, r)
	case http.MethodPut:
		h.submitRaw(w, r)
	default:
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// index returns GET / — service description and endpoint list.
func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, IndexResponse{
		Message: "Bin API - A pastebin service",
		Endpoints: []APIEndpoint{
			{Method: "GET", Path: "/", Description: "Get API information"},
			{Method: "POST", Path: "/", Description: "Create a new paste (form data)"},
			{Method: "PUT", Path: "/", Description: "Create a new paste (raw data)"},
			{Method: "GET", Path: "/all", Description: "Get all paste IDs for your device"},
			{Method: "POST", Path: "/device", Description: "Issue a new device code"},
			{Method: "GET", Path: "/{paste}", Description: "Get paste content by ID"},
		},
	})
}

// submitForm handles POST / with a form body ("val" field). On success it
// redirects to the new paste's URL, matching browser form submission.
func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	device, ok := auth.DeviceCode(r)
	if !ok {
		Unauthorized(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxPasteSize())
	if err := r.ParseForm(); err != nil {
		h.rejectBody(w, err)
		return
	}

	id := h.storePaste([]byte(r.PostForm.Get("val")), device)
	w.Header().Set("Location", "/"+id)
	w.WriteHeader(http.StatusFound)
}

// submitRaw handles PUT / with the paste as the raw request body. It
// responds with the paste's URL in plain text, absolute when the request
// carried a Host header.
func (h *Handler) submitRaw(w http.ResponseWriter, r *http.Request) {
	device, ok := auth.DeviceCode(r)
	if !ok {
		Unauthorized(w, r)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxPasteSize()))
	if err != nil {
		h.rejectBody(w, err)
		return
	}

	id := h.storePaste(data, device)

	uri := "/" + id + "\n"
	if r.Host != "" {
		uri = fmt.Sprintf("https://%s/%s\n", r.Host, id)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, uri)
}

// showPaste returns GET /{paste} — the ownership-checked lookup. An optional
// file-extension suffix is accepted and ignored; it only ever mattered to
// client-side rendering.
func (h *Handler) showPaste(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	device, ok := auth.DeviceCode(r)
	if !ok {
		Unauthorized(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/")
	id, _, _ = strings.Cut(id, ".")

	content, ok := h.store.Get(id, device)
	if !ok {
		// Unknown id and someone else's paste look identical on purpose.
		h.counters.LookupMisses.Add(1)
		jsonErr(w, http.StatusNotFound, "Not Found")
		return
	}

	h.counters.PastesServed.Add(1)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(content) //nolint:errcheck
}

// listPastes returns GET /all — the device's live paste ids, newest first.
func (h *Handler) listPastes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	device, ok := auth.DeviceCode(r)
	if !ok {
		Unauthorized(w, r)
		return
	}

	jsonResp(w, http.StatusOK, h.store.ListIDs(device))
}

// newDevice returns POST /device — a freshly issued device code, guaranteed
// not to collide with any device currently owning pastes.
func (h *Handler) newDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	code := idgen.NewDeviceCode(h.store)
	h.counters.DevicesIssued.Add(1)
	slog.Info("device code issued")
	jsonResp(w, http.StatusOK, DeviceResponse{DeviceCode: code})
}

// --- helpers ----------------------------------------------------------------

// storePaste mints an identifier, re-rolling a couple of times if the fresh
// id is already live, and inserts the paste. A collision surviving all
// re-rolls falls back to the store's documented overwrite behavior.
func (h *Handler) storePaste(content []byte, device string) string {
	id := idgen.New()
	for attempt := 0; attempt < 2 && h.store.Has(id); attempt++ {
		id = idgen.New()
	}

	evicted := h.store.Insert(id, content, device)
	h.counters.PastesStored.Add(1)
	h.counters.PastesEvicted.Add(uint64(evicted))

	// Device codes are credentials, so they stay out of the logs.
	slog.Info("paste stored", "id", id, "size", len(content), "evicted", evicted)
	return id
}

func (h *Handler) maxPasteSize() int64 {
	return int64(h.rt.Current().Server.MaxPasteSize)
}

// rejectBody maps a body-read failure to a response: oversized bodies get
// 413, anything else 400.
func (h *Handler) rejectBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		jsonErr(w, http.StatusRequestEntityTooLarge, "Payload Too Large")
		return
	}
	jsonErr(w, http.StatusBadRequest, "Bad Request")
}

// Unauthorized writes the uniform 401 JSON body. Exported so the auth gate
// can reuse the same error shape.
func Unauthorized(w http.ResponseWriter, _ *http.Request) {
	jsonErr(w, http.StatusUnauthorized, "Unauthorized")
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg, Status: code})
}
