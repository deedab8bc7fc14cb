package engine

import "context"

// Robber (tier 6): may swap cards with another player and look at the
// card taken.
func (g *Game) robberAction(ctx context.Context, player Participant) error {
	rob, err := g.chooseBool(ctx, player)
	if err != nil || !rob {
		return err
	}
	target, err := g.choosePlayer(ctx, player, g.others(player))
	if err != nil {
		return err
	}
	g.swap(PlayerTarget(player), PlayerTarget(target))
	return g.revealTo(ctx, player, PlayerTarget(player))
}
