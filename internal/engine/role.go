package engine

import (
	"context"
	"fmt"
)

// RoleKind identifies the twelve roles of the base game.
type RoleKind int

const (
	KindDoppelganger RoleKind = iota + 1
	KindWerewolf
	KindMinion
	KindMason
	KindSeer
	KindRobber
	KindTroublemaker
	KindDrunk
	KindInsomniac
	KindVillager
	KindHunter
	KindTanner
)

var kindNames = map[RoleKind]string{
	KindDoppelganger: "Doppelganger",
	KindWerewolf:     "Werewolf",
	KindMinion:       "Minion",
	KindMason:        "Mason",
	KindSeer:         "Seer",
	KindRobber:       "Robber",
	KindTroublemaker: "Troublemaker",
	KindDrunk:        "Drunk",
	KindInsomniac:    "Insomniac",
	KindVillager:     "Villager",
	KindHunter:       "Hunter",
	KindTanner:       "Tanner",
}

func (k RoleKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// AllKinds returns every role kind in night order, passive roles last.
func AllKinds() []RoleKind {
	return []RoleKind{
		KindDoppelganger, KindWerewolf, KindMinion, KindMason,
		KindSeer, KindRobber, KindTroublemaker, KindDrunk,
		KindInsomniac, KindVillager, KindHunter, KindTanner,
	}
}

// RoleType is the alignment used by win conditions and type reveals.
type RoleType string

const (
	TypeVillager RoleType = "Villager"
	TypeWerewolf RoleType = "Werewolf"
	TypeMinion   RoleType = "Minion"
)

// Priority orders night actions. Lower tiers run first.
type Priority int

var kindPriority = map[RoleKind]Priority{
	KindDoppelganger: 1,
	KindWerewolf:     2,
	KindMinion:       3,
	KindMason:        4,
	KindSeer:         5,
	KindRobber:       6,
	KindTroublemaker: 7,
	KindDrunk:        8,
	KindInsomniac:    9,
}

// Role is the behaviour held by one card. Only a Doppelganger ever
// carries a copied role.
type Role struct {
	kind   RoleKind
	copied *Role
}

// NewRole returns a fresh role of the given kind.
func NewRole(kind RoleKind) Role {
	return Role{kind: kind}
}

func (r Role) Kind() RoleKind { return r.kind }

// ID is the printed name of the card.
func (r Role) ID() string { return r.kind.String() }

// VerboseID includes the copied role, e.g. "Doppelganger(Robber)".
func (r Role) VerboseID() string {
	if r.kind != KindDoppelganger {
		return r.ID()
	}
	if r.copied == nil {
		return r.ID() + "()"
	}
	return fmt.Sprintf("%s(%s)", r.ID(), r.copied.VerboseID())
}

// EffectiveID is the role the holder is treated as by game logic.
func (r Role) EffectiveID() string {
	if r.copied != nil {
		return r.copied.ID()
	}
	return r.ID()
}

// Copied returns the role a Doppelganger took over, if any.
func (r Role) Copied() (Role, bool) {
	if r.copied == nil {
		return Role{}, false
	}
	return *r.copied, true
}

func (r Role) Type() RoleType {
	switch r.kind {
	case KindWerewolf:
		return TypeWerewolf
	case KindMinion:
		return TypeMinion
	case KindDoppelganger:
		if r.copied != nil {
			return r.copied.Type()
		}
	}
	return TypeVillager
}

// Priorities returns the night tiers this role acts at. A Doppelganger
// only owns its copying tier; the copied role is scheduled separately.
func (r Role) Priorities() []Priority {
	if p, ok := kindPriority[r.kind]; ok {
		return []Priority{p}
	}
	return nil
}

// Clone returns a deep copy safe to hand to participants.
func (r Role) Clone() Role {
	out := Role{kind: r.kind}
	if r.copied != nil {
		c := r.copied.Clone()
		out.copied = &c
	}
	return out
}

func (r Role) String() string { return r.VerboseID() }

// actAs runs the night action of r at priority pri for player. r points
// into the card arena so a Doppelganger can rewrite itself in place.
func (g *Game) actAs(ctx context.Context, r *Role, player Participant, pri Priority) error {
	own, ok := kindPriority[r.kind]
	if !ok || own != pri {
		if r.kind == KindDoppelganger && r.copied != nil {
			return g.actAs(ctx, r.copied, player, pri)
		}
		return &UnsupportedPriorityError{Role: r.VerboseID(), Priority: pri}
	}

	switch r.kind {
	case KindDoppelganger:
		return g.doppelgangerAction(ctx, r, player)
	case KindWerewolf:
		return g.werewolfAction(ctx, player)
	case KindMinion:
		return g.minionAction(ctx, player)
	case KindMason:
		return g.masonAction(ctx, *r, player)
	case KindSeer:
		return g.seerAction(ctx, player)
	case KindRobber:
		return g.robberAction(ctx, player)
	case KindTroublemaker:
		return g.troublemakerAction(ctx, player)
	case KindDrunk:
		return g.drunkAction(ctx, player)
	case KindInsomniac:
		return g.insomniacAction(ctx, player)
	}
	return &UnsupportedPriorityError{Role: r.VerboseID(), Priority: pri}
}

// voteAction is a consequence of the vote produced by a role.
type voteAction struct {
	kill string
}

func (r Role) afterVote(player string, votes map[string]string, dead map[string]bool) []voteAction {
	switch r.kind {
	case KindHunter:
		return hunterAfterVote(player, votes, dead)
	case KindDoppelganger:
		if r.copied != nil {
			return r.copied.afterVote(player, votes, dead)
		}
	}
	return nil
}

// deadCard pairs a dead participant with the role they died holding.
type deadCard struct {
	player string
	role   Role
}

func (r Role) wins(g *Game, player string, dead []deadCard) bool {
	switch r.kind {
	case KindWerewolf:
		return werewolfWins(dead)
	case KindMinion:
		return minionWins(g, player, dead)
	case KindTanner:
		return tannerWins(player, dead)
	case KindDoppelganger:
		if r.copied != nil {
			return r.copied.wins(g, player, dead)
		}
	}
	return villageWins(g, dead)
}

// vetoes returns the winners whose victory r strips away.
func (r Role) vetoes(player string, winners map[string]bool, roleOf func(string) Role) []string {
	switch r.kind {
	case KindTanner:
		return tannerVetoes(player, winners, roleOf)
	case KindDoppelganger:
		if r.copied != nil {
			return r.copied.vetoes(player, winners, roleOf)
		}
	}
	return nil
}
