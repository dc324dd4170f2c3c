package app

import (
	"context"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
	"github.com/dkeye/chathub/internal/protocol"
)

// Emitter is how the CRUD layer pushes events into the hub after it has
// persisted something. Each call serializes the event once.
type Emitter struct {
	Engine  *Engine
	Members *Membership
}

func (e *Emitter) Broadcast(t protocol.EventType, data any) (core.PublishResult, error) {
	frame, err := protocol.Encode(t, data)
	if err != nil {
		return core.PublishResult{}, err
	}
	return e.Engine.Broadcast(frame), nil
}

func (e *Emitter) ToUsers(t protocol.EventType, users []domain.UserID, data any) (core.PublishResult, error) {
	set := make(MemberSet, len(users))
	for _, u := range users {
		if !u.IsAnonymous() {
			set[u] = struct{}{}
		}
	}
	if len(set) == 0 {
		return core.PublishResult{}, nil
	}
	frame, err := protocol.Encode(t, data)
	if err != nil {
		return core.PublishResult{}, err
	}
	return e.Engine.Relay(frame, set, ""), nil
}

// ToRoom delivers to the room's current members. A failed membership
// lookup sends nothing.
func (e *Emitter) ToRoom(ctx context.Context, t protocol.EventType, room domain.RoomID, data any) (core.PublishResult, error) {
	members, err := e.Members.MembersOf(ctx, room)
	if err != nil {
		return core.PublishResult{}, err
	}
	frame, err := protocol.Encode(t, data)
	if err != nil {
		return core.PublishResult{}, err
	}
	return e.Engine.Relay(frame, members, ""), nil
}

func (e *Emitter) NewMessage(ctx context.Context, room domain.RoomID, msg any) (core.PublishResult, error) {
	return e.ToRoom(ctx, protocol.EventNewMessage, room, msg)
}

func (e *Emitter) MessageUpdated(ctx context.Context, room domain.RoomID, msg any) (core.PublishResult, error) {
	return e.ToRoom(ctx, protocol.EventMessageUpdated, room, msg)
}

func (e *Emitter) MessageDeleted(ctx context.Context, room domain.RoomID, msg any) (core.PublishResult, error) {
	return e.ToRoom(ctx, protocol.EventMessageDeleted, room, msg)
}

func (e *Emitter) ReactionAdded(ctx context.Context, room domain.RoomID, reaction any) (core.PublishResult, error) {
	return e.ToRoom(ctx, protocol.EventReactionAdded, room, reaction)
}

func (e *Emitter) ReactionRemoved(ctx context.Context, room domain.RoomID, reaction any) (core.PublishResult, error) {
	return e.ToRoom(ctx, protocol.EventReactionRemoved, room, reaction)
}

func (e *Emitter) Notification(user domain.UserID, n any) (core.PublishResult, error) {
	return e.ToUsers(protocol.EventNewNotification, []domain.UserID{user}, n)
}

func (e *Emitter) NewMeeting(participants []domain.UserID, meeting any) (core.PublishResult, error) {
	return e.ToUsers(protocol.EventNewMeeting, participants, meeting)
}

func (e *Emitter) AuxStatusUpdate(data any) (core.PublishResult, error) {
	return e.Broadcast(protocol.EventAuxStatusUpdate, data)
}

func (e *Emitter) EmployeeStatusUpdate(sessions []domain.AuxSession) (core.PublishResult, error) {
	if sessions == nil {
		sessions = []domain.AuxSession{}
	}
	return e.Broadcast(protocol.EventEmployeeStatusUpdate, sessions)
}
