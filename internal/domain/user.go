// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const MaxUserIDLen = 64

var (
	ErrUserIDTooLong = errors.New("user id too long")
	ErrUserIDEmpty   = errors.New("user id empty")
)

// UserID is the identity bound to a connection. The zero value is anonymous.
type UserID string

const Anonymous UserID = ""

func (id UserID) IsAnonymous() bool { return id == Anonymous }

// ParseUserID normalizes a session value into a UserID.
func ParseUserID(raw string) (UserID, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == 0 {
		return Anonymous, ErrUserIDEmpty
	}
	if len(raw) > MaxUserIDLen {
		return Anonymous, ErrUserIDTooLong
	}
	return UserID(raw), nil
}

// ConnID identifies one live transport connection. A reconnect gets a new one.
type ConnID string
