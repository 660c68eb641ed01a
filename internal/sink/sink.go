// Package sink defines where search hits and volume changes are published.
//
// Publishing is fire-and-forget: a Sink never reports failure back to the
// walker or the monitor.
package sink

import "sync"

// Event names understood by front ends. Do not rename.
const (
	EventAdd     = "add"
	EventVolumes = "volumes"
)

// Sink receives published events
type Sink interface {
	Publish(event string, payload any)
}

// Func adapts a function to Sink
type Func func(event string, payload any)

// Publish calls f
func (f Func) Publish(event string, payload any) {
	f(event, payload)
}

// Discard drops everything
var Discard Sink = Func(func(string, any) {})

// Multi fans one event out to several sinks in order
type Multi []Sink

// Publish forwards to every sink
func (m Multi) Publish(event string, payload any) {
	for _, s := range m {
		s.Publish(event, payload)
	}
}

// Message is one published event
type Message struct {
	Event   string
	Payload any
}

// Recorder keeps every published message in memory
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Publish records the event
func (r *Recorder) Publish(event string, payload any) {
	r.mu.Lock()
	r.messages = append(r.messages, Message{Event: event, Payload: payload})
	r.mu.Unlock()
}

// Messages returns a copy of what was recorded
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Len returns the number of recorded messages
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}
