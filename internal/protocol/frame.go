package protocol

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/dkeye/chathub/internal/domain"
)

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrInvalidFrame   = errors.New("invalid frame")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Inbound is the closed set of decoded client frames.
type Inbound interface {
	Kind() Kind
	inbound()
}

// Subscribe is informational. Any identity it claims is discarded.
type Subscribe struct{}

// AuxUpdate carries an opaque status payload for everyone.
type AuxUpdate struct {
	Payload json.RawMessage
}

// Signal is a call-negotiation frame. Raw is relayed byte for byte.
type Signal struct {
	kind   Kind
	RoomID domain.RoomID
	Raw    []byte
}

// Unknown is any type this build does not route.
type Unknown struct {
	Type string
}

func (Subscribe) Kind() Kind { return KindSubscribe }
func (AuxUpdate) Kind() Kind { return KindAuxUpdate }
func (s Signal) Kind() Kind { return s.kind }
func (u Unknown) Kind() Kind { return Kind(u.Type) }
func (Subscribe) inbound() {}
func (AuxUpdate) inbound() {}
func (Signal) inbound() {}
func (Unknown) inbound() {}

type header struct {
	Type    string          `json:"type" validate:"required"`
	RoomID  domain.RoomID   `json:"roomId"`
	Payload json.RawMessage `json:"payload"`
}

type signalHeader struct {
	RoomID domain.RoomID `validate:"required"`
}

// Decode classifies one inbound frame. On ErrInvalidFrame the returned
// Inbound is still set when the kind was recognized, so callers can log it.
func Decode(data []byte) (Inbound, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if err := validate.Struct(h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	kind := Kind(h.Type)
	switch {
	case kind == KindSubscribe:
		return Subscribe{}, nil
	case kind == KindAuxUpdate:
		return AuxUpdate{Payload: h.Payload}, nil
	case IsSignal(kind):
		sig := Signal{kind: kind, RoomID: h.RoomID, Raw: data}
		if err := validate.Struct(signalHeader{RoomID: h.RoomID}); err != nil {
			return sig, fmt.Errorf("%w: %s without roomId", ErrInvalidFrame, kind)
		}
		return sig, nil
	default:
		return Unknown{Type: h.Type}, nil
	}
}
