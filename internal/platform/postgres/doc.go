// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver, and ships the schema as embedded goose migrations.
//
// Uniqueness of user emails and per-owner category names is enforced by
// unique indexes; violations surface as the matching store sentinel errors.
package postgres
