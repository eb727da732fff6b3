// Package ws implements the WebSocket stats hub for bin-server. Connected
// clients receive a JSON frame with the store's live totals (paste count,
// device count) on connect and then on a fixed interval. The frame never
// contains paste content or device codes, so the endpoint needs no
// credential of its own.
package ws
