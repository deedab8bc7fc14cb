package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CollectVotes asks every participant, concurrently, to vote for one of
// the others. It may only run once, before resolution.
func (g *Game) CollectVotes(ctx context.Context) error {
	if g.votes != nil || g.dead != nil || g.winners != nil {
		return ErrWrongCommandOrder
	}

	choices := make([]string, len(g.players))
	eg, ctx := errgroup.WithContext(ctx)
	for i, p := range g.players {
		eg.Go(func() error {
			target, err := g.choosePlayer(ctx, p, g.others(p))
			if err != nil {
				return fmt.Errorf("vote: %w", err)
			}
			choices[i] = target.Name()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	votes := make(map[string]string, len(g.players))
	for i, p := range g.players {
		votes[p.Name()] = choices[i]
	}
	g.votes = votes
	g.log.Info("votes collected", zap.Any("votes", votes))
	return nil
}

// CalcDeadAndWinners resolves the vote: the most voted players die (ties
// included), post-vote reactions such as the Hunter's add more dead,
// then each role's win condition and veto decide the winners. Every
// participant is told whether they won.
func (g *Game) CalcDeadAndWinners(ctx context.Context) error {
	if g.votes == nil || g.dead != nil || g.winners != nil {
		return ErrWrongCommandOrder
	}

	dead := tally(g.votes)
	dead = g.applyReactions(dead)
	g.dead = dead
	g.winners = g.decideWinners(dead)

	g.log.Info("game resolved",
		zap.Strings("dead", g.Dead()),
		zap.Strings("winners", g.Winners()))

	err := each(ctx, g.players, func(ctx context.Context, p Participant) error {
		return p.ShowWin(ctx, g.winners[p.Name()])
	})
	if err != nil {
		return fmt.Errorf("show win: %w", err)
	}
	return nil
}

// tally returns every player tied for the most votes.
func tally(votes map[string]string) map[string]bool {
	counts := make(map[string]int)
	top := 0
	for _, target := range votes {
		counts[target]++
		top = max(top, counts[target])
	}
	dead := make(map[string]bool)
	for name, n := range counts {
		if n == top {
			dead[name] = true
		}
	}
	return dead
}

// applyReactions evaluates every role against the dead set produced by
// the vote and applies the resulting kills. Reactions do not chain.
func (g *Game) applyReactions(dead map[string]bool) map[string]bool {
	snapshot := maps.Clone(dead)
	out := maps.Clone(dead)
	for _, p := range g.players {
		for _, a := range g.currentRole(p.Name()).afterVote(p.Name(), g.votes, snapshot) {
			if a.kill != "" && !out[a.kill] {
				g.log.Info("reaction kill", zap.String("by", p.Name()), zap.String("target", a.kill))
				out[a.kill] = true
			}
		}
	}
	return out
}

// decideWinners evaluates win conditions against dead, then lets roles
// with a veto strip wins from others. Vetoes are all computed against
// the same base winner set.
func (g *Game) decideWinners(dead map[string]bool) map[string]bool {
	var deadCards []deadCard
	for _, p := range g.players {
		if dead[p.Name()] {
			deadCards = append(deadCards, deadCard{player: p.Name(), role: g.currentRole(p.Name())})
		}
	}

	winners := make(map[string]bool)
	for _, p := range g.players {
		if g.currentRole(p.Name()).wins(g, p.Name(), deadCards) {
			winners[p.Name()] = true
		}
	}

	var stripped []string
	for _, p := range g.players {
		stripped = append(stripped, g.currentRole(p.Name()).vetoes(p.Name(), winners, g.currentRole)...)
	}
	for _, name := range stripped {
		delete(winners, name)
	}
	return winners
}

// Votes returns who voted for whom, or nil before CollectVotes.
func (g *Game) Votes() map[string]string {
	return maps.Clone(g.votes)
}

// Dead returns the sorted names of the dead.
func (g *Game) Dead() []string { return sortedNames(g.dead) }

// Winners returns the sorted names of the winners.
func (g *Game) Winners() []string { return sortedNames(g.winners) }

// FinalRoles maps each participant to the effective id of the card they
// hold now.
func (g *Game) FinalRoles() map[string]string {
	out := make(map[string]string, len(g.players))
	for _, p := range g.players {
		out[p.Name()] = g.currentRole(p.Name()).EffectiveID()
	}
	return out
}

// Result is the externally meaningful outcome of one round.
type Result struct {
	Votes      map[string]string `json:"votes"`
	Dead       []string          `json:"dead"`
	Winners    []string          `json:"winners"`
	FinalRoles map[string]string `json:"final_roles"`
}

func (g *Game) Result() Result {
	return Result{
		Votes:      g.Votes(),
		Dead:       g.Dead(),
		Winners:    g.Winners(),
		FinalRoles: g.FinalRoles(),
	}
}

func sortedNames(set map[string]bool) []string {
	if set == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}
