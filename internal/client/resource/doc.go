// Package resource wraps the clinic REST resources: patients, doctors,
// the queue, the scheduler, the dashboard and the health check.
//
// Payloads are passed through as decoded JSON objects. Credentials come
// from a HeaderProvider supplied at construction.
package resource
