package app

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
)

// MemberSet is a read-only snapshot of a room's member ids.
type MemberSet map[domain.UserID]struct{}

func (s MemberSet) Has(id domain.UserID) bool {
	if id.IsAnonymous() {
		return false
	}
	_, ok := s[id]
	return ok
}

// Membership answers "who is in this room" straight from storage.
// Nothing is cached: membership may change in the middle of a call.
type Membership struct {
	store core.Storage
}

func NewMembership(store core.Storage) *Membership {
	return &Membership{store: store}
}

// MembersOf never returns a nil set. On error the set is empty.
func (m *Membership) MembersOf(ctx context.Context, room domain.RoomID) (MemberSet, error) {
	members, err := m.store.GetChatRoomMembers(ctx, room)
	if err != nil {
		return MemberSet{}, fmt.Errorf("members of room %s: %w", room, err)
	}
	members = lo.Filter(members, func(rm domain.RoomMember, _ int) bool {
		return !rm.ID.IsAnonymous()
	})
	return lo.SliceToMap(members, func(rm domain.RoomMember) (domain.UserID, struct{}) {
		return rm.ID, struct{}{}
	}), nil
}
