// Package config loads bin-server's configuration from the `server:` section
// of config.yaml, with environment overrides on top.
//
// Config fields:
//   - ListenAddr         — HTTP bind address (default 127.0.0.1:8820)
//   - MaxPasteSize       — request body cap in bytes (default 32768)
//   - DevicePasteLimit   — pastes kept per device before rotation (default 2)
//   - Auth.Mode          — "apikey" or "none"; gate in front of the HTTP surface
//   - Auth.KeyEnv        — environment variable holding the expected key
//   - Auth.Header        — header the key is read from (default "x-api-key")
//   - Stats.Interval     — websocket stats broadcast period (default 5s)
//   - Pyroscope.*        — optional continuous profiling target
//
// Load(path) applies defaults before unmarshalling, then env overrides
// (BIN_LISTEN_ADDR, BIN_MAX_PASTE_SIZE, BIN_DEVICE_PASTE_LIMIT), then
// validates. Runtime serves immutable config snapshots to handlers, and
// Watch hot-reloads the file into a Runtime via fsnotify.
package config
