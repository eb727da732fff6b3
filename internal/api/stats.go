package api

import (
	"time"

	"github.com/pybash1/bin/internal/store"
)

// BuildStats reads the store's live totals into a StatsResponse. The ws hub
// calls this on every broadcast tick.
func BuildStats(st *store.Store) StatsResponse {
	return StatsResponse{
		PasteCount:  st.Count(),
		DeviceCount: st.DeviceCount(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
