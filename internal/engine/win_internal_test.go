package engine

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"
)

// seat is a participant that never gets asked anything.
type seat string

func (s seat) Name() string                                           { return string(s) }
func (seat) ShowRole(context.Context, RoleTarget, Role) error         { return nil }
func (seat) ShowRoleType(context.Context, RoleTarget, RoleType) error { return nil }

func (seat) ChoosePlayer(context.Context, []Participant) (Participant, error) {
	return nil, ErrCommunication
}

func (seat) ChooseBool(context.Context) (bool, error)                       { return false, ErrCommunication }
func (seat) ChooseNum(context.Context, []int) (int, error)                  { return 0, ErrCommunication }
func (seat) ReceiveMessage(context.Context, Message) error                  { return nil }
func (seat) Handshake(context.Context, []Participant, map[string]int) error { return nil }
func (seat) ShowTime(context.Context, Time) error                           { return nil }
func (seat) ShowWin(context.Context, bool) error                            { return nil }

func newTestGame(t *testing.T, kinds ...RoleKind) *Game {
	t.Helper()
	players := make([]Participant, len(kinds)-CenterSize)
	for i := range players {
		players[i] = seat(string(rune('a' + i)))
	}
	rs := make([]Role, len(kinds))
	for i, k := range kinds {
		rs[i] = NewRole(k)
	}
	opts := DefaultOptions()
	opts.DebugSetRoles = true
	g, err := New(players, rs, opts)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNobodyDiesWithoutWerewolves(t *testing.T) {
	g := newTestGame(t, KindVillager, KindSeer, KindTanner, KindWerewolf, KindMinion, KindVillager)
	got := slices.Sorted(maps.Keys(g.decideWinners(map[string]bool{})))
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("winners: %v", got)
	}
}

func TestNobodyDiesWithWerewolf(t *testing.T) {
	g := newTestGame(t, KindVillager, KindWerewolf, KindMinion, KindTanner, KindVillager, KindVillager)
	got := slices.Sorted(maps.Keys(g.decideWinners(map[string]bool{})))
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("winners: %v", got)
	}
}

func TestTallyTies(t *testing.T) {
	tests := []struct {
		votes map[string]string
		want  []string
	}{
		{map[string]string{"a": "b", "b": "a", "c": "a"}, []string{"a"}},
		{map[string]string{"a": "b", "b": "c", "c": "a"}, []string{"a", "b", "c"}},
		{map[string]string{"a": "c", "b": "c", "c": "a", "d": "a"}, []string{"a", "c"}},
	}
	for _, tt := range tests {
		if got := sortedNames(tally(tt.votes)); !slices.Equal(got, tt.want) {
			t.Errorf("tally(%v) = %v, want %v", tt.votes, got, tt.want)
		}
	}
}

func TestReactionsDoNotChain(t *testing.T) {
	// Two hunters: only the one killed by the vote fires.
	g := newTestGame(t, KindHunter, KindHunter, KindVillager, KindVillager, KindVillager, KindVillager)
	g.votes = map[string]string{"a": "b", "b": "c", "c": "a"}
	dead := g.applyReactions(map[string]bool{"a": true})
	if got := sortedNames(dead); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("dead: %v", got)
	}
}

func TestSeatNeverAnswers(t *testing.T) {
	g := newTestGame(t, KindSeer, KindVillager, KindVillager, KindVillager, KindVillager)
	if err := g.PerformNextNightAction(context.Background(), nil); !errors.Is(err, ErrCommunication) {
		t.Fatalf("expected ErrCommunication, got %v", err)
	}
}
