// Package mocks provides function-field test doubles for the store and auth
// interfaces. Each mock falls back to simple in-memory defaults when a
// function field is not set.
package mocks
