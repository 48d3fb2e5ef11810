package events

import (
	"log"
	"sort"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// Subscriber observes dispatched rule events. Reaction-eligibility
// evaluation and telemetry live behind this interface, outside the core.
type Subscriber interface {
	HandleEvent(event *RuleEvent) error
	Priority() int
	ID() string
}

// Stream distributes rule events to subscribers in priority order. One
// stream belongs to one combat instance; there is no process-wide bus.
type Stream struct {
	subscribers []Subscriber
}

// NewStream creates an empty event stream
func NewStream() *Stream {
	return &Stream{}
}

// Subscribe adds a subscriber, keeping priority order stable
func (s *Stream) Subscribe(sub Subscriber) {
	s.subscribers = append(s.subscribers, sub)
	sort.SliceStable(s.subscribers, func(i, j int) bool {
		return s.subscribers[i].Priority() < s.subscribers[j].Priority()
	})
}

// Unsubscribe removes a subscriber by id
func (s *Stream) Unsubscribe(subscriberID string) {
	for i, sub := range s.subscribers {
		if sub.ID() == subscriberID {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to all subscribers in priority order. A
// subscriber error aborts delivery and surfaces to the caller.
func (s *Stream) Publish(event *RuleEvent) error {
	for _, sub := range s.subscribers {
		if err := sub.HandleEvent(event); err != nil {
			log.Printf("[EVENTS] subscriber %s failed on %s: %v", sub.ID(), event.Type, err)
			return engerr.Wrapf(err, "subscriber %s", sub.ID())
		}
	}
	return nil
}
