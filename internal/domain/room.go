package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrBadRoomID = errors.New("room id must be a string or a number")

// RoomID accepts both "42" and 42 on the wire.
type RoomID string

func (id *RoomID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RoomID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrBadRoomID
	}
	*id = RoomID(n.String())
	return nil
}
