package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/chathub/internal/domain"
)

func TestRegistry_ConsistencyUnderInterleaving(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	const n, m = 200, 120
	conns := make([]*Conn, n)
	for i := range conns {
		conns[i] = NewConn(&fakeSignal{}, domain.UserID("u"))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(c *Conn, remove bool) {
			defer wg.Done()
			reg.Add(c)
			if remove {
				reg.Remove(c.ID())
			}
		}(conns[i], i < m)
	}
	wg.Wait()

	req.Equal(n-m, reg.Len())
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	a := NewConn(&fakeSignal{}, "alice")
	b := NewConn(&fakeSignal{}, "bob")
	reg.Add(a)
	reg.Add(b)

	req.True(reg.Remove(a.ID()))
	req.False(reg.Remove(a.ID()))
	req.Equal(1, reg.Len())

	_, ok := reg.Get(a.ID())
	req.False(ok)
	uid, ok := reg.Identity(b.ID())
	req.True(ok)
	req.Equal(domain.UserID("bob"), uid)
}

func TestRegistry_AddTwiceKeepsOneEntry(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	c := NewConn(&fakeSignal{}, "alice")

	req.True(reg.Add(c))
	req.False(reg.Add(c))
	req.Equal(1, reg.Len())
}

func TestRegistry_ForEachAllowsMutation(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	for i := 0; i < 5; i++ {
		reg.Add(NewConn(&fakeSignal{}, ""))
	}

	visited := 0
	reg.ForEach(func(c *Conn) {
		visited++
		reg.Remove(c.ID())
	})

	req.Equal(5, visited)
	req.Zero(reg.Len())
}

func TestRegistry_Stats(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Add(NewConn(&fakeSignal{}, "alice"))
	reg.Add(NewConn(&fakeSignal{}, "alice"))
	reg.Add(NewConn(&fakeSignal{}, "bob"))
	reg.Add(NewConn(&fakeSignal{}, domain.Anonymous))

	req.Equal(Stats{Connections: 4, Authenticated: 3, Users: 2}, reg.Stats())
	req.True(reg.HasUser("bob"))
	req.False(reg.HasUser("carol"))
}
