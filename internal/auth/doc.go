// Package auth provides the two request-credential concerns of bin-server:
// extraction and validation of the per-client Device-Code header, and the
// optional instance-wide API key gate (Gate) that sits in front of the whole
// HTTP surface. When the gate's mode is not "apikey" or no key is
// configured, it passes every request through.
package auth
