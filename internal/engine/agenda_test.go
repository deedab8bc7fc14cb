package engine_test

import (
	"errors"
	"slices"
	"testing"

	"onenight/internal/engine"
)

func TestAgendaOrder(t *testing.T) {
	a := engine.NewAgenda()
	for _, p := range []engine.Priority{6, 2, 4, 2} {
		if err := a.Add(p, engine.NightAction{Card: engine.CardID(p)}); err != nil {
			t.Fatal(err)
		}
	}
	if got := a.Tiers(); !slices.Equal(got, []engine.Priority{2, 4, 6}) {
		t.Fatalf("tiers: %v", got)
	}

	p, acts, err := a.Pop()
	if err != nil || p != 2 || len(acts) != 2 {
		t.Fatalf("pop: %d %v %v", p, acts, err)
	}
	if !acts[0].Fake() {
		t.Error("an action without a player is fake")
	}
}

func TestAgendaDrainedTier(t *testing.T) {
	a := engine.NewAgenda()
	_ = a.Add(1, engine.NightAction{})
	_ = a.Add(3, engine.NightAction{})

	if _, _, err := a.Pop(); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(1, engine.NightAction{}); !errors.Is(err, engine.ErrDrainedTier) {
		t.Fatalf("re-adding drained tier: got %v", err)
	}
	if err := a.Add(2, engine.NightAction{}); err != nil {
		t.Fatalf("adding a later tier: %v", err)
	}
	if p, ok := a.Peek(); !ok || p != 2 {
		t.Errorf("peek: %d %v", p, ok)
	}

	_, _, _ = a.Pop()
	_, _, _ = a.Pop()
	if _, ok := a.Peek(); ok {
		t.Error("agenda should be empty")
	}
	if _, _, err := a.Pop(); !errors.Is(err, engine.ErrNoMoreNightActions) {
		t.Errorf("pop empty: %v", err)
	}
}
