package engine

import "context"

// Seer (tier 5): looks at another player's card, or at two center cards.
func (g *Game) seerAction(ctx context.Context, player Participant) error {
	lookAtPlayer, err := g.chooseBool(ctx, player)
	if err != nil {
		return err
	}
	if lookAtPlayer {
		target, err := g.choosePlayer(ctx, player, g.others(player))
		if err != nil {
			return err
		}
		return g.revealTo(ctx, player, PlayerTarget(target))
	}

	first, err := g.chooseNum(ctx, player, g.centerSlots())
	if err != nil {
		return err
	}
	second, err := g.chooseNum(ctx, player, g.centerSlots(first))
	if err != nil {
		return err
	}
	if err := g.revealTo(ctx, player, CenterTarget(first)); err != nil {
		return err
	}
	return g.revealTo(ctx, player, CenterTarget(second))
}
