// Package store defines the persistence contracts used by the services: the
// user (credential) store and the per-user category and task stores. Storage
// implementations live under internal/platform.
package store
