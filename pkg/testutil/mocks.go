// Package testutil provides recording fakes shared by the access service
// tests.
package testutil

import (
	"context"
	"sync"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/events"
)

// RecordingPublisher is an events.Publisher that keeps every event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	closed int
	// Err is returned from Publish after the event is recorded.
	Err error
}

var _ events.Publisher = (*RecordingPublisher)(nil)

func (p *RecordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.Err
}

func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

// Events returns a copy of the recorded events.
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// EventTypes returns the type of every recorded event in order.
func (p *RecordingPublisher) EventTypes() []enums.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]enums.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

// Closed reports how often Close was called.
func (p *RecordingPublisher) Closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Reset forgets the recorded events.
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// OperationCounter counts handler operations by name, matching the
// handlers.Recorder interface.
type OperationCounter struct {
	mu     sync.Mutex
	ops    map[string]int
	errs   map[string]int
	server map[string]int
}

// NewOperationCounter returns an empty counter.
func NewOperationCounter() *OperationCounter {
	return &OperationCounter{ops: map[string]int{}, errs: map[string]int{}, server: map[string]int{}}
}

func (c *OperationCounter) RecordOperation(serverName, operation string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops[operation]++
	c.server[serverName]++
	if err != nil {
		c.errs[operation]++
	}
}

// Calls returns how often operation ran.
func (c *OperationCounter) Calls(operation string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ops[operation]
}

// Failures returns how often operation failed.
func (c *OperationCounter) Failures(operation string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[operation]
}

// ServerCalls returns how many operations ran on serverName.
func (c *OperationCounter) ServerCalls(serverName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server[serverName]
}
