package events

// Publisher sends an already-encoded event to a topic.
type Publisher interface {
	Publish(topic string, body []byte) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, []byte) error { return nil }
