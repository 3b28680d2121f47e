package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion is stamped on every published envelope. Consumers default
// missing or unknown payload fields instead of failing, so bumping the
// version is only needed for incompatible reshapes.
const SchemaVersion = 1

// Envelope is the self-describing wire shape carried by the durable
// transport: identity metadata plus the raw event payload.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// Wrap serializes an event into its wire envelope.
func Wrap(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	env := Envelope{
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		OccurredAt:    event.OccurredAt(),
		SchemaVersion: SchemaVersion,
		Data:          data,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return body, nil
}

// Open parses a wire envelope. Envelopes published before versioning are
// treated as version 1.
func Open(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	if env.SchemaVersion == 0 {
		env.SchemaVersion = 1
	}

	return &env, nil
}

// DecodeFunc turns an envelope payload into a concrete event. One decoder
// is registered per event type at start-up, replacing any runtime type
// lookup during dispatch.
type DecodeFunc func(data json.RawMessage) (Event, error)
