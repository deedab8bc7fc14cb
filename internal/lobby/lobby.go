package lobby

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"onenight/internal/engine"
)

var (
	ErrStarted          = errors.New("game already started")
	ErrFull             = errors.New("lobby is full")
	ErrNameTaken        = errors.New("name already taken")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotReady         = errors.New("not all players ready")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
	Bot   bool
}

// Lobby represents a game lobby waiting for players.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Roles      map[string]int
	LoneWolf   bool
	Started    bool

	registry *engine.Registry
}

// NewLobby creates a new lobby whose role mix is checked against reg.
func NewLobby(id string, reg *engine.Registry) *Lobby {
	return &Lobby{
		ID:         id,
		MaxPlayers: 10,
		MinPlayers: 3,
		Roles:      make(map[string]int),
		registry:   reg,
	}
}

// Join adds a player to the lobby. Joining again with a known id renames
// the player.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if l.nameTaken(name, id) {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}
	for _, p := range l.Players {
		if p.ID == id {
			p.Name = name
			return nil
		}
	}
	if len(l.Players) >= l.MaxPlayers {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// AddBot seats a bot, always ready, and returns its id.
func (l *Lobby) AddBot(name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return "", ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return "", ErrFull
	}
	if l.nameTaken(name, "") {
		return "", fmt.Errorf("%w: %q", ErrNameTaken, name)
	}
	id := uuid.NewString()
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name, Ready: true, Bot: true})
	return id, nil
}

func (l *Lobby) nameTaken(name, except string) bool {
	for _, p := range l.Players {
		if p.Name == name && p.ID != except {
			return true
		}
	}
	return false
}

// Leave removes a player from the lobby.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// SetRoles replaces the role mix. Per-role counts are validated now; the
// total is checked against the table size at Start.
func (l *Lobby) SetRoles(roles map[string]int, loneWolf bool) error {
	if _, err := l.registry.Build(roles); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Started {
		return ErrStarted
	}
	l.Roles = maps.Clone(roles)
	l.LoneWolf = loneWolf
	return nil
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readyLocked() == nil
}

func (l *Lobby) readyLocked() error {
	if len(l.Players) < l.MinPlayers {
		return ErrNotEnoughPlayers
	}
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotReady
		}
	}
	return nil
}

// Start marks the lobby as started and returns the roles to deal.
func (l *Lobby) Start() ([]engine.Role, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return nil, ErrStarted
	}
	if err := l.readyLocked(); err != nil {
		return nil, err
	}
	roles, err := l.registry.Build(l.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(l.Players)+engine.CenterSize {
		return nil, &engine.RoleCountError{Roles: len(roles), Players: len(l.Players)}
	}
	l.Started = true
	return roles, nil
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}

// RoleMix returns a copy of the selected role counts.
func (l *Lobby) RoleMix() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.Roles)
}

func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}
