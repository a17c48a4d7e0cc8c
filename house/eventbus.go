package house

import (
	"encoding/json"
	"log"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
)

// BusSink publishes house events onto an in-process EventBus, one
// topic per event type. Subscribers receive the typed event value.
type BusSink struct {
	bus EventBus.Bus
}

// NewBusSink wraps an existing bus. Pass EventBus.New() for a private one.
func NewBusSink(bus EventBus.Bus) *BusSink {
	return &BusSink{bus: bus}
}

func (s *BusSink) Publish(event Event) {
	s.bus.Publish(event.Topic(), event)
}

// Subscribe registers a handler for a topic. The handler signature
// must accept the event type published on that topic.
func (s *BusSink) Subscribe(topic string, handler any) error {
	return s.bus.Subscribe(topic, handler)
}

// LogSink writes events to the process log as single-line JSON, tagged
// with a fresh uuid per event. Useful as a default sink and for
// auditing daemons without bus subscribers.
type LogSink struct{}

func (LogSink) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: Failed to encode event %s: %v", event.Topic(), err)
		return
	}
	log.Printf("INFO: Event %s id=%s payload=%s", event.Topic(), uuid.NewString(), payload)
}

// MultiSink fans one event out to several sinks in order.
type MultiSink []EventSink

func (m MultiSink) Publish(event Event) {
	for _, sink := range m {
		sink.Publish(event)
	}
}
