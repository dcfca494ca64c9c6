// Package domain contains the core entities of the task board: users and their
// roles, categories and tasks. It is independent of storage and transport.
package domain
