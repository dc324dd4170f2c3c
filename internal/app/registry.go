package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chathub/internal/domain"
)

// Registry tracks every live connection exactly once.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*Conn
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[domain.ConnID]*Conn),
	}
}

func (r *Registry) Add(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c.ID()]; ok {
		return false
	}
	r.conns[c.ID()] = c
	log.Info().Str("module", "app.registry").Str("conn", string(c.ID())).Str("user", string(c.User())).Msg("bound connection")
	return true
}

// Remove is idempotent; it reports whether the connection was still present.
func (r *Registry) Remove(id domain.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return false
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbind connection")
	return true
}

func (r *Registry) Get(id domain.ConnID) (*Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

func (r *Registry) Identity(id domain.ConnID) (domain.UserID, bool) {
	c, ok := r.Get(id)
	if !ok {
		return domain.Anonymous, false
	}
	return c.User(), true
}

// ForEach visits a snapshot, so visit may call back into the registry.
func (r *Registry) ForEach(visit func(*Conn)) {
	r.mu.RLock()
	snap := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		snap = append(snap, c)
	}
	r.mu.RUnlock()

	for _, c := range snap {
		visit(c)
	}
}

func (r *Registry) HasUser(uid domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.conns {
		if c.User() == uid {
			return true
		}
	}
	return false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

type Stats struct {
	Connections   int `json:"connections"`
	Authenticated int `json:"authenticated"`
	Users         int `json:"users"`
}

func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make(map[domain.UserID]struct{})
	st := Stats{Connections: len(r.conns)}
	for _, c := range r.conns {
		if c.Anonymous() {
			continue
		}
		st.Authenticated++
		users[c.User()] = struct{}{}
	}
	st.Users = len(users)
	return st
}
