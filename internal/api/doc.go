// Package api implements the HTTP surface of bin-server.
//
// New(store, runtime, counters) returns an http.Handler that serves:
//
//	GET  /           — API index (message + endpoint list)
//	POST /           — create a paste from form data ("val" field); 302 to /{id}
//	PUT  /           — create a paste from the raw body; plaintext URL reply
//	GET  /all        — the device's live paste ids, newest first
//	POST /device     — issue a fresh device code
//	GET  /{paste}    — paste content; an optional .ext suffix is ignored
//
// Every paste operation requires a valid Device-Code header (8 characters,
// A-Z and 0-9); requests without one get 401. Lookups of unknown ids and of
// other devices' pastes both answer 404, indistinguishably. Errors are JSON
// bodies of the form {"error": ..., "status": ...}; paste content itself is
// served as text/plain.
//
// Request bodies are capped at the configured max_paste_size, read from the
// config runtime on every request so hot reloads apply immediately.
package api
