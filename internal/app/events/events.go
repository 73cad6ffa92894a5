// Package events publishes out-topic notifications about changes to the
// metadata elements managed by the access service.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/odpi/itinfra/internal/app/domain/enums"
)

// Event describes one change to an element or relationship.
type Event struct {
	ID               string                 `json:"eventId"`
	EventType        enums.EventType        `json:"eventType"`
	ServerName       string                 `json:"serverName"`
	UserID           string                 `json:"userId"`
	TypeName         string                 `json:"typeName"`
	ElementGUID      string                 `json:"elementGUID,omitempty"`
	RelationshipGUID string                 `json:"relationshipGUID,omitempty"`
	End1GUID         string                 `json:"end1GUID,omitempty"`
	End2GUID         string                 `json:"end2GUID,omitempty"`
	Properties       map[string]interface{} `json:"properties,omitempty"`
	Time             time.Time              `json:"eventTime"`
}

// Stamp fills the identifier and time when they are unset.
func (e Event) Stamp() Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	return e
}

// Publisher delivers events to an out topic.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Multi fans an event out to several publishers. Every publisher is tried and
// the failures are joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt Event) error {
	evt = evt.Stamp()
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
