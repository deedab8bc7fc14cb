package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

var (
	ErrNoMoreNightActions = errors.New("no more night actions")
	ErrWrongCommandOrder  = errors.New("wrong command order")
	ErrDrainedTier        = errors.New("night tier already drained")
	ErrInvalidChoice      = errors.New("choice not among the offered options")
	ErrDuplicatePlayer    = errors.New("duplicate player name")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidRoleMix     = errors.New("invalid role mix")

	// Participant implementations wrap one of these.
	ErrCommunication      = errors.New("communication error")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// CenterSize is the number of cards left undealt.
const CenterSize = 3

// RoleCountError is returned by New when the roles don't fit the table.
type RoleCountError struct {
	Roles   int
	Players int
}

func (e *RoleCountError) Error() string {
	return fmt.Sprintf("expected %d roles for %d players, got %d", e.Players+CenterSize, e.Players, e.Roles)
}

// UnsupportedPriorityError is returned when a role is asked to act at a
// tier it has no action for.
type UnsupportedPriorityError struct {
	Role     string
	Priority Priority
}

func (e *UnsupportedPriorityError) Error() string {
	return fmt.Sprintf("%s has no night action at priority %d", e.Role, e.Priority)
}

// Game holds the state of one round. It is driven by a single goroutine;
// only the participant calls it makes fan out.
type Game struct {
	opts Options
	log  *zap.Logger

	players []Participant // deal order
	cards   []card
	held    map[string]CardID
	center  []CardID
	byType  map[RoleType]map[string]bool
	agenda  *Agenda

	votes   map[string]string
	dead    map[string]bool
	winners map[string]bool
}

// New deals roles to players and schedules the night. Roles are shuffled
// unless opts.DebugSetRoles is set; the first len(players) go to the
// players in order and the rest form the center.
func New(players []Participant, roles []Role, opts Options) (*Game, error) {
	if len(roles) != len(players)+CenterSize {
		return nil, &RoleCountError{Roles: len(roles), Players: len(players)}
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.Name())
		}
		seen[p.Name()] = true
	}

	if !opts.DebugSetRoles {
		roles = shuffleRoles(roles)
	}
	dealt, rest := deal(roles, len(players))

	g := &Game{
		opts:    opts,
		log:     opts.logger(),
		players: slices.Clone(players),
		held:    make(map[string]CardID, len(players)),
		byType:  make(map[RoleType]map[string]bool),
		agenda:  NewAgenda(),
	}

	for i, p := range g.players {
		id := CardID(len(g.cards))
		g.cards = append(g.cards, card{role: dealt[i].Clone()})
		g.place(PlayerTarget(p), id)
	}
	for slot, r := range rest {
		id := CardID(len(g.cards))
		g.cards = append(g.cards, card{role: r.Clone()})
		g.center = append(g.center, id)
		g.cards[id].holder = Holder{Slot: slot}
	}

	for i, p := range g.players {
		g.schedule(CardID(i), p)
	}
	for _, id := range g.center {
		g.schedule(id, nil)
	}

	g.log.Info("game dealt",
		zap.Int("players", len(g.players)),
		zap.Bool("lone_wolf", opts.LoneWolf),
		zap.Ints("tiers", priorityInts(g.agenda.Tiers())))
	return g, nil
}

// schedule adds one agenda entry per priority of the card's role.
func (g *Game) schedule(id CardID, player Participant) {
	for _, p := range g.cards[id].role.Priorities() {
		// Nothing has been drained during construction.
		_ = g.agenda.Add(p, NightAction{Card: id, Player: player})
	}
}

// Players returns the participants in deal order.
func (g *Game) Players() []Participant {
	return slices.Clone(g.players)
}

func (g *Game) Options() Options { return g.opts }

// Agenda exposes the pending night actions.
func (g *Game) Agenda() *Agenda { return g.agenda }

// RoleCounts returns how many cards of each role name are in play,
// dealt and center alike.
func (g *Game) RoleCounts() map[string]int {
	out := make(map[string]int)
	for _, c := range g.cards {
		out[c.role.ID()]++
	}
	return out
}

// PeekNextNightAction returns the next night tier, if any remain.
func (g *Game) PeekNextNightAction() (Priority, bool) {
	return g.agenda.Peek()
}

// PerformNextNightAction drains the lowest pending tier. Entries run in
// insertion order; the table hears about a role's segment once per run
// of entries sharing an effective role. Center cards call onFake instead
// of acting. ErrNoMoreNightActions means the night is over.
func (g *Game) PerformNextNightAction(ctx context.Context, onFake func(context.Context) error) error {
	pri, actions, err := g.agenda.Pop()
	if err != nil {
		return err
	}

	last := ""
	for _, act := range actions {
		role := &g.cards[act.Card].role
		if id := role.EffectiveID(); id != last {
			last = id
			if err := g.announce(ctx, Time{Phase: PhaseNight, Role: id}); err != nil {
				return err
			}
		}

		if act.Fake() {
			g.log.Debug("skipping center action", zap.Int("priority", int(pri)), zap.String("role", role.VerboseID()))
			if onFake != nil {
				if err := onFake(ctx); err != nil {
					return err
				}
			}
			continue
		}

		g.log.Debug("performing night action",
			zap.Int("priority", int(pri)),
			zap.String("role", role.VerboseID()),
			zap.String("player", act.Player.Name()))
		if err := g.actAs(ctx, role, act.Player, pri); err != nil {
			return fmt.Errorf("%s night action for %s: %w", role.VerboseID(), act.Player.Name(), err)
		}
	}
	return nil
}

// Play runs a whole round: handshake, night, vote and resolution.
func (g *Game) Play(ctx context.Context, onFake func(context.Context) error) error {
	if err := g.SendHandshake(ctx); err != nil {
		return err
	}
	if err := g.announce(ctx, Time{Phase: PhaseDusk}); err != nil {
		return err
	}
	if err := g.ShowAllRoles(ctx); err != nil {
		return err
	}

	for {
		if _, ok := g.PeekNextNightAction(); !ok {
			break
		}
		if err := g.PerformNextNightAction(ctx, onFake); err != nil {
			return err
		}
	}

	if err := g.announce(ctx, Time{Phase: PhaseDay}); err != nil {
		return err
	}
	if err := g.announce(ctx, Time{Phase: PhaseVote}); err != nil {
		return err
	}
	if err := g.CollectVotes(ctx); err != nil {
		return err
	}
	if err := g.CalcDeadAndWinners(ctx); err != nil {
		return err
	}
	return g.announce(ctx, Time{
		Phase:   PhaseEnd,
		Dead:    g.participants(g.dead),
		Winners: g.participants(g.winners),
	})
}

// participants returns the players named in set, in deal order.
func (g *Game) participants(set map[string]bool) []Participant {
	var out []Participant
	for _, p := range g.players {
		if set[p.Name()] {
			out = append(out, p)
		}
	}
	return out
}

func priorityInts(ps []Priority) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = int(p)
	}
	return out
}
