package engine

import (
	"context"
	"fmt"
	"slices"
)

// Helpers shared by several roles.

// revealTo shows player the role currently on the card at target.
func (g *Game) revealTo(ctx context.Context, player Participant, target RoleTarget) error {
	role := g.cards[g.cardOf(target)].role.Clone()
	if err := player.ShowRole(ctx, target, role); err != nil {
		return fmt.Errorf("show %s to %s: %w", target, player.Name(), err)
	}
	return nil
}

// revealType shows player every other participant currently holding a
// card of type t and returns how many were shown.
func (g *Game) revealType(ctx context.Context, player Participant, t RoleType) (int, error) {
	count := 0
	for _, p := range g.players {
		if p.Name() == player.Name() || !g.byType[t][p.Name()] {
			continue
		}
		if err := player.ShowRoleType(ctx, PlayerTarget(p), t); err != nil {
			return count, fmt.Errorf("show %s type to %s: %w", p.Name(), player.Name(), err)
		}
		count++
	}
	return count, nil
}

// others returns every participant except player, in deal order.
func (g *Game) others(player Participant) []Participant {
	out := make([]Participant, 0, len(g.players)-1)
	for _, p := range g.players {
		if p.Name() != player.Name() {
			out = append(out, p)
		}
	}
	return out
}

// choosePlayer asks asker to pick among candidates and returns the
// engine's own handle for the chosen one.
func (g *Game) choosePlayer(ctx context.Context, asker Participant, candidates []Participant) (Participant, error) {
	chosen, err := asker.ChoosePlayer(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("%s choosing player: %w", asker.Name(), err)
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: %s chose nobody", ErrInvalidChoice, asker.Name())
	}
	for _, c := range candidates {
		if c.Name() == chosen.Name() {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s chose %s", ErrInvalidChoice, asker.Name(), chosen.Name())
}

func (g *Game) chooseNum(ctx context.Context, asker Participant, choices []int) (int, error) {
	n, err := asker.ChooseNum(ctx, choices)
	if err != nil {
		return 0, fmt.Errorf("%s choosing number: %w", asker.Name(), err)
	}
	if !slices.Contains(choices, n) {
		return 0, fmt.Errorf("%w: %s chose %d from %v", ErrInvalidChoice, asker.Name(), n, choices)
	}
	return n, nil
}

func (g *Game) chooseBool(ctx context.Context, asker Participant) (bool, error) {
	b, err := asker.ChooseBool(ctx)
	if err != nil {
		return false, fmt.Errorf("%s choosing yes/no: %w", asker.Name(), err)
	}
	return b, nil
}

// centerSlots lists the center slot numbers, skipping any in exclude.
func (g *Game) centerSlots(exclude ...int) []int {
	out := make([]int, 0, len(g.center))
	for i := range g.center {
		if !slices.Contains(exclude, i) {
			out = append(out, i)
		}
	}
	return out
}
