package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/chathub/internal/domain"
)

func TestEmitter_RoomEventsGoToMembersOnly(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newTestHub(t, Options{})
	_, aliceSig := h.connect("alice")
	_, bobSig := h.connect("bob")
	_, anonSig := h.connect(domain.Anonymous)

	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("7")).
		Return(members("alice", "bob"), nil).Times(2)

	res, err := h.Emitter.NewMessage(ctx, "7", map[string]any{"id": 1, "text": "hi"})
	req.NoError(err)
	req.Equal(2, res.SendTo)

	_, err = h.Emitter.ReactionAdded(ctx, "7", map[string]any{"messageId": 1, "emoji": "+1"})
	req.NoError(err)

	req.Len(aliceSig.Frames(), 2)
	req.JSONEq(`{"type":"new_message","data":{"id":1,"text":"hi"}}`, bobSig.Frames()[0])
	req.JSONEq(`{"type":"reaction_added","data":{"messageId":1,"emoji":"+1"}}`, bobSig.Frames()[1])
	req.Empty(anonSig.Frames())
}

func TestEmitter_RoomLookupFailureSendsNothing(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})
	_, aliceSig := h.connect("alice")

	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), gomock.Any()).Return(nil, errors.New("no such room"))

	_, err := h.Emitter.MessageDeleted(context.Background(), "9", map[string]any{"id": 3})
	req.Error(err)
	req.Empty(aliceSig.Frames())
}

func TestEmitter_UserScopedEvents(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})
	_, aliceSig := h.connect("alice")
	_, bobSig := h.connect("bob")
	_, carolSig := h.connect("carol")

	_, err := h.Emitter.Notification("alice", map[string]any{"text": "leave approved"})
	req.NoError(err)
	_, err = h.Emitter.NewMeeting([]domain.UserID{"bob", "carol", ""}, map[string]any{"title": "standup"})
	req.NoError(err)

	req.Equal([]string{`{"type":"new_notification","data":{"text":"leave approved"}}`}, aliceSig.Frames())
	req.Len(bobSig.Frames(), 1)
	req.Len(carolSig.Frames(), 1)
}

func TestEmitter_GlobalEvents(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})
	_, aliceSig := h.connect("alice")
	_, anonSig := h.connect(domain.Anonymous)

	_, err := h.Emitter.AuxStatusUpdate(map[string]any{"userId": "alice", "status": "lunch"})
	req.NoError(err)
	_, err = h.Emitter.EmployeeStatusUpdate(nil)
	req.NoError(err)

	for _, sig := range []*fakeSignal{aliceSig, anonSig} {
		frames := sig.Frames()
		req.Len(frames, 2)
		req.JSONEq(`{"type":"employee_status_update","data":[]}`, frames[1])
	}
}
