// Package events carries account lifecycle events from the services that
// produce them to handlers that audit them.
//
// Services emit events without knowing which handlers will process them. A
// failing handler never fails the operation that produced the event.
package events
