package auth

import (
	"net/http"

	"github.com/pybash1/bin/internal/config"
	"github.com/pybash1/bin/internal/idgen"
)

// DeviceCodeHeader is the header clients present their device code in.
const DeviceCodeHeader = "Device-Code"

// DeviceCode extracts and validates the device code from r.
//
// A code is valid only when it is exactly 8 characters from {A-Z, 0-9}.
// Anything else — missing header, wrong length, lowercase, punctuation —
// comes back as ("", false), and the handler must reject the request before
// the store is touched: store operations assume a well-formed code.
func DeviceCode(r *http.Request) (string, bool) {
	code := r.Header.Get(DeviceCodeHeader)
	if !ValidDeviceCode(code) {
		return "", false
	}
	return code, true
}

// ValidDeviceCode reports whether code is exactly 8 characters of A-Z0-9.
func ValidDeviceCode(code string) bool {
	if len(code) != idgen.DeviceCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Gate returns middleware that enforces the instance-wide API key in front
// of next.
//
// Behaviour follows the auth config active at request time (read from rt,
// so a hot reload takes effect immediately):
//   - If mode != "apikey" or the resolved key is empty, all requests pass
//     through (useful for local instances with the gate disabled).
//   - Otherwise the configured header must carry exactly the expected key;
//     a missing or wrong key gets a 401 response from reject.
//
// reject writes the 401; keeping it a parameter lets the API package own
// the error body shape.
func Gate(rt *config.Runtime, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := rt.Current().Server.Auth
			key := a.Key()
			if a.Mode != "apikey" || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if r.Header.Get(a.EffectiveHeader()) != key {
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
