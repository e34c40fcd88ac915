// Package messaging defines interfaces for real-time communication.
package messaging

// Publisher announces content changes to connected admin clients.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
