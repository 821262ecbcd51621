package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryFlags guarda los flags en memoria de proceso. Para desarrollo y
// despliegues de un solo nodo.
type MemoryFlags struct{ c *gocache.Cache }

func NewMemoryFlags(sessionTTL time.Duration) *MemoryFlags {
	return &MemoryFlags{c: gocache.New(sessionTTL, time.Minute)}
}

func (m *MemoryFlags) Get(ctx context.Context, sessionID string) (bool, error) {
	_, ok := m.c.Get(sessionID)
	return ok, nil
}

func (m *MemoryFlags) Set(ctx context.Context, sessionID string) error {
	m.c.SetDefault(sessionID, true)
	return nil
}
