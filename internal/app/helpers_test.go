package app

import (
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/dkeye/chathub/internal/core"
	"github.com/dkeye/chathub/internal/domain"
	"github.com/dkeye/chathub/mocks"
)

type fakeSignal struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool
}

func (f *fakeSignal) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return core.ErrConnClosed
	}
	if f.full {
		return core.ErrBackpressure
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeSignal) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeSignal) Frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.frames))
	for _, fr := range f.frames {
		out = append(out, string(fr))
	}
	return out
}

func (f *fakeSignal) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type testHub struct {
	*Orchestrator
	store *mocks.MockStorage
}

func newTestHub(t *testing.T, opts Options) *testHub {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStorage(ctrl)
	return &testHub{Orchestrator: NewOrchestrator(store, opts), store: store}
}

func (h *testHub) connect(user domain.UserID) (*Conn, *fakeSignal) {
	sig := &fakeSignal{}
	return h.Connect(sig, user), sig
}

func members(ids ...domain.UserID) []domain.RoomMember {
	out := make([]domain.RoomMember, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.RoomMember{ID: id})
	}
	return out
}
