// Package shared holds the request and response helpers used by both the API
// handlers and their middleware: JSON decoding and validation, error
// envelopes, trace IDs and the authenticated principal in the request context.
package shared
