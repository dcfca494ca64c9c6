// Package testutils provides helpers for tests that run against a real
// PostgreSQL database. Such tests are skipped unless DATABASE_URL is set.
package testutils
