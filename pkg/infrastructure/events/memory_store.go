package events

import (
	"sync"

	"github.com/vsinha/assembler/pkg/infrastructure/logger"
)

// InMemoryEventStore keeps events in memory and delivers them to subscribers
// synchronously, in append order.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
	log         logger.Logger
}

// NewInMemoryEventStore creates an empty event store
func NewInMemoryEventStore(log logger.Logger) *InMemoryEventStore {
	if log == nil {
		log = logger.Nop()
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		log:         log,
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent stores event at the end of streamID and notifies subscribers
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	s.mutex.Unlock()

	s.notifySubscribers(versioned)
	return nil
}

// ReadEvents returns the events of streamID starting at fromVersion (1-based)
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(events) {
		return []Event{}, nil
	}

	result := make([]Event, len(events)-fromVersion+1)
	copy(result, events[fromVersion-1:])
	return result, nil
}

// ReadAllEvents returns every event from fromPosition (0-based) in append order
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	result := make([]Event, len(s.allEvents)-fromPosition)
	copy(result, s.allEvents[fromPosition:])
	return result, nil
}

// Subscribe registers handler for the given event types
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes handler from every event type
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}

// notifySubscribers runs outside the store lock so handlers may read the store
func (s *InMemoryEventStore) notifySubscribers(event Event) {
	s.mutex.RLock()
	handlers := append([]EventHandler(nil), s.subscribers[event.Type()]...)
	s.mutex.RUnlock()

	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			s.log.Warn("event handler failed", "event", event.Type(), "stream", event.StreamID(), "error", err)
		}
	}
}
