// Package api holds the HTTP handlers for authentication, accounts,
// categories and tasks. Handlers decode and validate requests, call the
// service layer with the principal attached by middleware.Authenticate, and
// translate errors into sanitized JSON responses via HandleAPIError.
package api
