// Package service contains the application use cases for accounts, categories
// and tasks. It orchestrates domain objects and the store interfaces defined
// in internal/store.
//
// Services never authenticate. Callers pass the verified principal's ID and
// every category and task operation is scoped to it; a resource owned by
// another user is reported as not found.
package service
