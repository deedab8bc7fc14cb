package engine

import (
	"slices"

	"go.uber.org/zap"
)

// CardID addresses a card in the game's arena. Cards never move in
// storage; only their holder changes.
type CardID int

// Holder records who currently has a card.
type Holder struct {
	Player string // empty when the card is in the center
	Slot   int    // center slot, -1 when held by a player
}

func (h Holder) InCenter() bool { return h.Player == "" }

type card struct {
	role   Role
	holder Holder
}

// cardOf returns the card currently at target.
func (g *Game) cardOf(t RoleTarget) CardID {
	if t.IsCenter() {
		return g.center[t.Center]
	}
	return g.held[t.Player.Name()]
}

// place puts card id at target and keeps the type index in step.
func (g *Game) place(t RoleTarget, id CardID) {
	if t.IsCenter() {
		g.center[t.Center] = id
		g.cards[id].holder = Holder{Slot: t.Center}
		return
	}
	name := t.Player.Name()
	g.held[name] = id
	g.cards[id].holder = Holder{Player: name, Slot: -1}
	g.reindex(name)
}

// reindex moves name into the bucket of the role it currently holds.
func (g *Game) reindex(name string) {
	for _, set := range g.byType {
		delete(set, name)
	}
	t := g.cards[g.held[name]].role.Type()
	if g.byType[t] == nil {
		g.byType[t] = make(map[string]bool)
	}
	g.byType[t][name] = true
}

// swap exchanges the cards at a and b and returns them in their new
// places: the card now at a, then the card now at b.
func (g *Game) swap(a, b RoleTarget) (CardID, CardID) {
	ca, cb := g.cardOf(a), g.cardOf(b)
	g.place(a, cb)
	g.place(b, ca)
	g.log.Debug("swapped cards",
		zap.Stringer("a", a), zap.String("a_now", g.cards[cb].role.VerboseID()),
		zap.Stringer("b", b), zap.String("b_now", g.cards[ca].role.VerboseID()))
	return cb, ca
}

// Card returns the role on a card and who holds it.
func (g *Game) Card(id CardID) (Role, Holder) {
	c := g.cards[id]
	return c.role.Clone(), c.holder
}

// RoleOf returns the role currently held by the named participant.
func (g *Game) RoleOf(name string) (Role, bool) {
	id, ok := g.held[name]
	if !ok {
		return Role{}, false
	}
	return g.cards[id].role.Clone(), true
}

// CenterRole returns the role currently in center slot i.
func (g *Game) CenterRole(slot int) (Role, bool) {
	if slot < 0 || slot >= len(g.center) {
		return Role{}, false
	}
	return g.cards[g.center[slot]].role.Clone(), true
}

// PlayersOfType lists, sorted, the participants whose current card has
// the given type.
func (g *Game) PlayersOfType(t RoleType) []string {
	var out []string
	for name := range g.byType[t] {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (g *Game) currentRole(name string) Role {
	return g.cards[g.held[name]].role
}
