package bot

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"onenight/internal/engine"
)

var errNoOptions = errors.New("nothing to choose from")

// Sighting is one card a bot was shown.
type Sighting struct {
	Target string
	Role   string
}

// Bot is an in-process participant that picks uniformly at random among
// whatever it is offered.
type Bot struct {
	name string
	log  *zap.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	seen     []Sighting
	types    []Sighting
	timeline []string
	heard    int
	won      *bool
}

// New creates a bot. Bots with equal seeds make equal choices.
func New(name string, seed uint64, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		name: name,
		log:  log.With(zap.String("bot", name)),
		rng:  rand.New(rand.NewPCG(seed, uint64(len(name)))),
	}
}

func (b *Bot) Name() string { return b.name }

func (b *Bot) ShowRole(_ context.Context, target engine.RoleTarget, role engine.Role) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = append(b.seen, Sighting{Target: target.String(), Role: role.VerboseID()})
	b.log.Debug("shown role", zap.Stringer("target", target), zap.String("role", role.VerboseID()))
	return nil
}

func (b *Bot) ShowRoleType(_ context.Context, target engine.RoleTarget, t engine.RoleType) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types = append(b.types, Sighting{Target: target.String(), Role: string(t)})
	return nil
}

func (b *Bot) ChoosePlayer(_ context.Context, candidates []engine.Participant) (engine.Participant, error) {
	if len(candidates) == 0 {
		return nil, errNoOptions
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := candidates[b.rng.IntN(len(candidates))]
	b.log.Debug("chose player", zap.String("choice", p.Name()))
	return p, nil
}

func (b *Bot) ChooseBool(context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.IntN(2) == 1, nil
}

func (b *Bot) ChooseNum(_ context.Context, choices []int) (int, error) {
	if len(choices) == 0 {
		return 0, errNoOptions
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return choices[b.rng.IntN(len(choices))], nil
}

func (b *Bot) ReceiveMessage(context.Context, engine.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.heard++
	return nil
}

func (b *Bot) Handshake(_ context.Context, others []engine.Participant, roles map[string]int) error {
	b.log.Debug("handshake", zap.Int("others", len(others)), zap.Any("roles", roles))
	return nil
}

func (b *Bot) ShowTime(_ context.Context, t engine.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeline = append(b.timeline, t.String())
	return nil
}

func (b *Bot) ShowWin(_ context.Context, won bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.won = &won
	b.log.Debug("game over", zap.Bool("won", won))
	return nil
}

// Seen returns the cards the bot has been shown, in order.
func (b *Bot) Seen() []Sighting {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Sighting(nil), b.seen...)
}

// Types returns the alignments the bot has been shown, in order.
func (b *Bot) Types() []Sighting {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Sighting(nil), b.types...)
}

// Timeline returns the phase announcements received so far.
func (b *Bot) Timeline() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.timeline...)
}

// Heard is the number of table messages relayed to the bot.
func (b *Bot) Heard() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.heard
}

// Won reports the result, with ok false until the game has been resolved.
func (b *Bot) Won() (won, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.won == nil {
		return false, false
	}
	return *b.won, true
}
