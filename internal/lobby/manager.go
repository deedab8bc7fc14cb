package lobby

import (
	"sync"

	"github.com/google/uuid"

	"onenight/internal/engine"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu       sync.Mutex
	lobbies  map[string]*Lobby
	registry *engine.Registry
}

func NewManager(reg *engine.Registry) *Manager {
	return &Manager{lobbies: make(map[string]*Lobby), registry: reg}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	m.lobbies[id] = NewLobby(id, m.registry)
	return id
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Remove forgets a finished lobby.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}

// generateID returns a short lobby code, the first block of a uuid.
func generateID() string {
	return uuid.NewString()[:8]
}
