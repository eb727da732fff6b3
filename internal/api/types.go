package api

// IndexResponse is the payload for GET /.
type IndexResponse struct {
	Message   string        `json:"message"`
	Endpoints []APIEndpoint `json:"endpoints"`
}

// APIEndpoint describes one route in the index listing.
type APIEndpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// DeviceResponse is the payload for POST /device.
type DeviceResponse struct {
	DeviceCode string `json:"device_code"`
}

// StatsResponse is the store-statistics frame served to websocket clients
// and embedded in hub broadcasts.
type StatsResponse struct {
	PasteCount  int    `json:"paste_count"`
	DeviceCount int    `json:"device_count"`
	GeneratedAt string `json:"generated_at"` // RFC3339
}

// errorResponse is the uniform JSON error body: {"error": ..., "status": ...}.
type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
