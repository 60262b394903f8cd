// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// CatalogQueueName is the durable queue carrying content mutations.
const CatalogQueueName = "catalog.changed"

// Mutation kinds carried in ContentChangedEvent.Action.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ContentChangedEvent is published after a successful content mutation. It
// carries enough for downstream consumers to build an audit trail without
// querying the primary database.
type ContentChangedEvent struct {
	Kind   string `json:"kind"`   // resource kind: products, categories, news, ...
	ID     string `json:"id"`     // caller-assigned id of the record
	Action string `json:"action"` // created | updated | deleted
	At     string `json:"at"`     // RFC3339 UTC timestamp
}
