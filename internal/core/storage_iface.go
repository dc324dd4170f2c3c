//go:generate go run go.uber.org/mock/mockgen -source=storage_iface.go -destination=../../mocks/mock_storage.go -package=mocks
package core

import (
	"context"

	"github.com/dkeye/chathub/internal/domain"
)

// Storage is the persistence collaborator. The hub only reads from it.
type Storage interface {
	GetChatRoomMembers(ctx context.Context, roomID domain.RoomID) ([]domain.RoomMember, error)
	GetAllActiveAuxSessions(ctx context.Context) ([]domain.AuxSession, error)
}
