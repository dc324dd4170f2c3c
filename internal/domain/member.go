package domain

import "time"

// RoomMember is one row of a chat room's membership as storage reports it.
type RoomMember struct {
	ID UserID `json:"id"`
}

// AuxSession is a user's current working status ("aux" state).
// Ended sessions are never reported as active.
type AuxSession struct {
	UserID UserID    `json:"userId"`
	Name   string    `json:"name,omitempty"`
	Status string    `json:"status"`
	Since  time.Time `json:"since"`
}
