// Package metrics exposes bin-server's operational counters and store gauges
// on GET /metrics in the Prometheus text exposition format.
package metrics
