package events

import (
	"context"
	"encoding/json"
	"time"
)

// Type names a state change.
type Type string

const (
	TypeMonthLockChanged    Type = "document.month_lock_changed"
	TypeCategoryLockChanged Type = "document.category_lock_changed"
	TypeDocumentUploaded    Type = "document.uploaded"
	TypeTaskAssigned        Type = "task.assigned"
	TypeTaskRemoved         Type = "task.removed"
	TypeAccountingDone      Type = "task.accounting_done"
	TypeEmployeeDeactivated Type = "employee.deactivated"
	TypeEmployeeActivated   Type = "employee.activated"
	TypeClientStatusChanged Type = "client.status_changed"
	TypeNoteAdded           Type = "note.added"
	TypeNotesViewed         Type = "note.viewed"
)

// Event is the message body published for every state change.
// Data carries the ids and flags relevant to Type.
type Event struct {
	Type       Type           `json:"type"`
	ClientID   string         `json:"clientId,omitempty"`
	ActorID    string         `json:"actorId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data,omitempty"`
}

// New creates an event stamped with now.
func New(t Type, clientID, actorID string, now time.Time, data map[string]any) Event {
	return Event{
		Type:       t,
		ClientID:   clientID,
		ActorID:    actorID,
		OccurredAt: now.UTC(),
		Data:       data,
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event from JSON bytes
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher sends state-change events to downstream consumers.
// Publishing is best effort: callers log failures and never roll back the change.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
