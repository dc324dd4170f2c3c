package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/chathub/internal/domain"
)

const offerR1 = `{"type":"call_offer","roomId":"r1","sdp":"v=0 o=- 1 2 IN IP4 127.0.0.1"}`

func TestDispatch_MemberRelaysToOtherMembers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newTestHub(t, Options{})

	// Given alice and bob are both in r1, dave is connected but not a member
	alice, aliceSig := h.connect("alice")
	_, bobSig := h.connect("bob")
	_, bobTabSig := h.connect("bob")
	_, daveSig := h.connect("dave")
	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).
		Return(members("alice", "bob"), nil)

	// When alice sends an offer
	h.OnFrame(ctx, alice, []byte(offerR1))

	// Then every bob connection gets the frame verbatim, nobody else does
	req.Equal([]string{offerR1}, bobSig.Frames())
	req.Equal([]string{offerR1}, bobTabSig.Frames())
	req.Empty(aliceSig.Frames())
	req.Empty(daveSig.Frames())
}

func TestDispatch_NonMemberIsRejected(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})

	_, aliceSig := h.connect("alice")
	_, bobSig := h.connect("bob")
	carol, carolSig := h.connect("carol")
	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).
		Return(members("alice", "bob"), nil)

	req.NotPanics(func() {
		h.OnFrame(context.Background(), carol, []byte(offerR1))
	})

	req.Empty(aliceSig.Frames())
	req.Empty(bobSig.Frames())
	req.Empty(carolSig.Frames())
}

func TestDispatch_AnonymousSenderNeverRelays(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})

	_, aliceSig := h.connect("alice")
	anon, anonSig := h.connect(domain.Anonymous)

	// No storage expectation: the lookup must not even happen.
	h.OnFrame(context.Background(), anon, []byte(offerR1))

	req.Empty(aliceSig.Frames())
	req.Empty(anonSig.Frames())
}

func TestDispatch_AnonymousNeverReceivesRelay(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})

	alice, _ := h.connect("alice")
	_, anonSig := h.connect(domain.Anonymous)
	_, bobSig := h.connect("bob")
	// Storage rows with an empty id must not authorize anonymous connections.
	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).
		Return(members("alice", "bob", ""), nil)

	h.OnFrame(context.Background(), alice, []byte(offerR1))

	req.Len(bobSig.Frames(), 1)
	req.Empty(anonSig.Frames())
}

func TestDispatch_AuxUpdateBroadcastsToEveryoneIncludingSender(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})

	anon, anonSig := h.connect(domain.Anonymous)
	_, aliceSig := h.connect("alice")
	_, bobSig := h.connect("bob")

	h.OnFrame(context.Background(), anon, []byte(`{"type":"aux_update","payload":{"status":"ready"}}`))

	want := `{"type":"aux_status_update","data":{"status":"ready"}}`
	for _, sig := range []*fakeSignal{anonSig, aliceSig, bobSig} {
		frames := sig.Frames()
		req.Len(frames, 1)
		req.JSONEq(want, frames[0])
	}
}

func TestDispatch_StorageFailureDropsFrameOnly(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newTestHub(t, Options{})

	alice, aliceSig := h.connect("alice")
	bob, bobSig := h.connect("bob")
	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r2")).
		Return(nil, errors.New("db gone"))
	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).
		Return(members("alice", "bob"), nil)

	// When the lookup for r2 fails
	req.NotPanics(func() {
		h.OnFrame(ctx, alice, []byte(`{"type":"call_offer","roomId":"r2","sdp":"x"}`))
	})
	req.Empty(bobSig.Frames())

	// Then later frames from another connection still go through
	answer := `{"type":"call_answer","roomId":"r1","sdp":"y"}`
	h.OnFrame(ctx, bob, []byte(answer))
	req.Equal([]string{answer}, aliceSig.Frames())
	req.Equal(2, h.Registry.Len())
}

func TestDispatch_MembershipIsFetchedPerFrame(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := newTestHub(t, Options{})

	alice, _ := h.connect("alice")
	_, bobSig := h.connect("bob")
	gomock.InOrder(
		h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).Return(members("alice", "bob"), nil),
		h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).Return(members("alice"), nil),
	)

	h.OnFrame(ctx, alice, []byte(offerR1))
	// bob left the room mid-call
	h.OnFrame(ctx, alice, []byte(`{"type":"ice_candidate","roomId":"r1","candidate":"c"}`))

	req.Equal([]string{offerR1}, bobSig.Frames())
}

func TestDispatch_MissingRoomIsRejected(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{})

	alice, aliceSig := h.connect("alice")
	_, bobSig := h.connect("bob")

	h.OnFrame(context.Background(), alice, []byte(`{"type":"call_end"}`))

	req.Empty(aliceSig.Frames())
	req.Empty(bobSig.Frames())
}

func TestDispatch_IgnoredFramesHaveNoEffect(t *testing.T) {
	frames := map[string]string{
		"unknown kind":   `{"type":"screen_share","roomId":"r1"}`,
		"subscribe":      `{"type":"subscribe","userId":"bob"}`,
		"malformed json": `{"type":"call_offer",`,
		"missing type":   `{"roomId":"r1"}`,
	}
	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			h := newTestHub(t, Options{})
			alice, aliceSig := h.connect("alice")
			_, bobSig := h.connect("bob")

			h.OnFrame(context.Background(), alice, []byte(frame))

			req.Empty(aliceSig.Frames())
			req.Empty(bobSig.Frames())
			req.Equal(2, h.Registry.Len())
			req.True(alice.Open())
			uid, ok := h.Registry.Identity(alice.ID())
			req.True(ok)
			req.Equal(domain.UserID("alice"), uid)
		})
	}
}

func TestDispatch_RateLimitedSignalIsDropped(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t, Options{SignalRateLimit: 1, SignalRateWindow: time.Minute})

	alice, _ := h.connect("alice")
	_, bobSig := h.connect("bob")
	h.store.EXPECT().GetChatRoomMembers(gomock.Any(), domain.RoomID("r1")).
		Return(members("alice", "bob"), nil).Times(1)

	h.OnFrame(context.Background(), alice, []byte(offerR1))
	h.OnFrame(context.Background(), alice, []byte(offerR1))

	req.Len(bobSig.Frames(), 1)
}
