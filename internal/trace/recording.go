package trace

import "sync"

// RecordedEvent is one captured decision event.
type RecordedEvent struct {
	Name   string
	Fields map[string]interface{}
}

// Recording captures events in order so tests can assert on the decisions a
// component made without parsing log output.
type Recording struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func NewRecording() *Recording {
	return &Recording{}
}

func (r *Recording) Event(name string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.events = append(r.events, RecordedEvent{Name: name, Fields: copied})
}

func (r *Recording) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Find returns the first event with the given name.
func (r *Recording) Find(name string) (RecordedEvent, bool) {
	for _, ev := range r.Events() {
		if ev.Name == name {
			return ev, true
		}
	}
	return RecordedEvent{}, false
}
