package engine_test

import (
	"context"
	"fmt"
	"sync"

	"onenight/internal/engine"
)

// answer is one queued reply of a scripted participant. Exactly one
// field is meaningful, selected by kind.
type answer struct {
	kind   string // "player", "bool", "num"
	player string
	b      bool
	n      int
}

func pick(name string) answer { return answer{kind: "player", player: name} }
func yes() answer             { return answer{kind: "bool", b: true} }
func no() answer              { return answer{kind: "bool", b: false} }
func num(n int) answer        { return answer{kind: "num", n: n} }

type shown struct {
	target string
	role   string
}

// scripted replays queued answers and records everything it is shown.
type scripted struct {
	name string

	mu       sync.Mutex
	answers  []answer
	roles    []shown
	types    []shown
	times    []string
	messages []engine.Message
	others   []string
	counts   map[string]int
	won      *bool
	failOn   string
}

func newScripted(name string, answers ...answer) *scripted {
	return &scripted{name: name, answers: answers}
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) next(kind string) (answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.answers) == 0 {
		return answer{}, fmt.Errorf("%w: %s ran out of answers", engine.ErrCommunication, s.name)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a.kind != kind {
		return answer{}, fmt.Errorf("%w: %s wanted %s, had %s", engine.ErrUnexpectedResponse, s.name, kind, a.kind)
	}
	return a, nil
}

func (s *scripted) fail(method string) error {
	if s.failOn == method {
		return fmt.Errorf("%w: %s is unreachable", engine.ErrCommunication, s.name)
	}
	return nil
}

func (s *scripted) ShowRole(_ context.Context, target engine.RoleTarget, role engine.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles = append(s.roles, shown{target: target.String(), role: role.VerboseID()})
	return s.fail("ShowRole")
}

func (s *scripted) ShowRoleType(_ context.Context, target engine.RoleTarget, t engine.RoleType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, shown{target: target.String(), role: string(t)})
	return nil
}

func (s *scripted) ChoosePlayer(_ context.Context, candidates []engine.Participant) (engine.Participant, error) {
	a, err := s.next("player")
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if c.Name() == a.player {
			return c, nil
		}
	}
	return newScripted(a.player), nil
}

func (s *scripted) ChooseBool(context.Context) (bool, error) {
	a, err := s.next("bool")
	return a.b, err
}

func (s *scripted) ChooseNum(context.Context, []int) (int, error) {
	a, err := s.next("num")
	return a.n, err
}

func (s *scripted) ReceiveMessage(_ context.Context, msg engine.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *scripted) Handshake(_ context.Context, others []engine.Participant, roles map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range others {
		s.others = append(s.others, o.Name())
	}
	s.counts = roles
	return s.fail("Handshake")
}

func (s *scripted) ShowTime(_ context.Context, t engine.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times = append(s.times, t.String())
	return nil
}

func (s *scripted) ShowWin(_ context.Context, won bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.won = &won
	return nil
}

func (s *scripted) push(answers ...answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answers...)
}

func (s *scripted) shownRoles() []shown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shown(nil), s.roles...)
}

func (s *scripted) shownTypes() []shown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shown(nil), s.types...)
}

func (s *scripted) shownTimes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.times...)
}

// table builds n scripted participants named p0..p(n-1).
func table(n int) ([]*scripted, []engine.Participant) {
	ss := make([]*scripted, n)
	ps := make([]engine.Participant, n)
	for i := range n {
		ss[i] = newScripted(fmt.Sprintf("p%d", i))
		ps[i] = ss[i]
	}
	return ss, ps
}

func roles(kinds ...engine.RoleKind) []engine.Role {
	out := make([]engine.Role, len(kinds))
	for i, k := range kinds {
		out[i] = engine.NewRole(k)
	}
	return out
}

func debugOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.DebugSetRoles = true
	return opts
}

// drainNight runs every remaining night tier.
func drainNight(g *engine.Game) error {
	for {
		if _, ok := g.PeekNextNightAction(); !ok {
			return nil
		}
		if err := g.PerformNextNightAction(context.Background(), nil); err != nil {
			return err
		}
	}
}

// voteFor queues one vote per participant: votes[i] is the name p_i
// votes for.
func voteFor(ss []*scripted, votes ...string) {
	for i, v := range votes {
		ss[i].push(pick(v))
	}
}
