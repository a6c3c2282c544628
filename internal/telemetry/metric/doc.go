// Package metric provides Prometheus metrics for medqueue.
//
// Each page context owns one Registry:
//
//   - medqueue_session_operations_total{operation,outcome}
//   - medqueue_http_request_duration_seconds{method,status}
//   - medqueue_badger_* (registered by the durable store)
//   - Go runtime and process collectors
//
// The CLI has no scrape endpoint; WriteText dumps the text exposition.
package metric
