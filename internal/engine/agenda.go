package engine

import (
	"fmt"
	"maps"
	"slices"
)

// NightAction is one scheduled wake-up. A nil Player marks a card lying
// in the center: nobody acts, but the moment is still announced.
type NightAction struct {
	Card   CardID
	Player Participant
}

// Fake reports whether nobody performs this action.
func (a NightAction) Fake() bool { return a.Player == nil }

// Agenda holds the pending night actions by tier. Each tier is drained
// exactly once, lowest first; new entries may only target tiers that
// have not been drained yet.
type Agenda struct {
	tiers   map[Priority][]NightAction
	drained Priority
	started bool
}

func NewAgenda() *Agenda {
	return &Agenda{tiers: make(map[Priority][]NightAction)}
}

// Add appends act to tier p.
func (a *Agenda) Add(p Priority, act NightAction) error {
	if a.started && p <= a.drained {
		return fmt.Errorf("%w: tier %d (drained through %d)", ErrDrainedTier, p, a.drained)
	}
	a.tiers[p] = append(a.tiers[p], act)
	return nil
}

// Peek returns the lowest pending tier without consuming it.
func (a *Agenda) Peek() (Priority, bool) {
	if len(a.tiers) == 0 {
		return 0, false
	}
	return slices.Min(slices.Collect(maps.Keys(a.tiers))), true
}

// Pop removes and returns the lowest pending tier.
func (a *Agenda) Pop() (Priority, []NightAction, error) {
	p, ok := a.Peek()
	if !ok {
		return 0, nil, ErrNoMoreNightActions
	}
	actions := a.tiers[p]
	delete(a.tiers, p)
	a.drained = p
	a.started = true
	return p, actions, nil
}

// Actions returns a copy of the entries pending at tier p.
func (a *Agenda) Actions(p Priority) []NightAction {
	return slices.Clone(a.tiers[p])
}

// Tiers returns the pending tiers in ascending order.
func (a *Agenda) Tiers() []Priority {
	return slices.Sorted(maps.Keys(a.tiers))
}
