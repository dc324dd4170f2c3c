package protocol

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/dkeye/chathub/internal/core"
)

// Event is the outbound envelope.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// Encode marshals an event once so every recipient gets identical bytes.
func Encode(t EventType, data any) (core.Frame, error) {
	b, err := json.Marshal(Event{Type: t, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return b, nil
}
