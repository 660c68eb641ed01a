package sink

import "sync"

// Chan delivers events over a buffered channel.
// Publish blocks while the buffer is full and returns immediately once the
// sink is closed, so a departed consumer never wedges a producer.
type Chan struct {
	ch   chan Message
	done chan struct{}
	once sync.Once
}

// NewChan creates a channel sink with the given buffer size
func NewChan(size int) *Chan {
	if size < 0 {
		size = 0
	}
	return &Chan{
		ch:   make(chan Message, size),
		done: make(chan struct{}),
	}
}

// Publish sends the event unless the sink is closed
func (c *Chan) Publish(event string, payload any) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.ch <- Message{Event: event, Payload: payload}:
	case <-c.done:
	}
}

// Messages returns the receive side. It is never closed; stop reading after Close.
func (c *Chan) Messages() <-chan Message {
	return c.ch
}

// Done is closed when the sink is closed
func (c *Chan) Done() <-chan struct{} {
	return c.done
}

// Close stops delivery. Safe to call more than once.
func (c *Chan) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}
