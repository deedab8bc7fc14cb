package engine

import (
	"context"
	"slices"
)

// Troublemaker (tier 7): may swap the cards of two other players without
// looking at them.
func (g *Game) troublemakerAction(ctx context.Context, player Participant) error {
	act, err := g.chooseBool(ctx, player)
	if err != nil || !act {
		return err
	}
	candidates := g.others(player)
	first, err := g.choosePlayer(ctx, player, candidates)
	if err != nil {
		return err
	}
	candidates = slices.DeleteFunc(candidates, func(p Participant) bool {
		return p.Name() == first.Name()
	})
	second, err := g.choosePlayer(ctx, player, candidates)
	if err != nil {
		return err
	}
	g.swap(PlayerTarget(first), PlayerTarget(second))
	return nil
}
