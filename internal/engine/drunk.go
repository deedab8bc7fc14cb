package engine

import "context"

// Drunk (tier 8): swaps with a center card of their choice without
// looking at it.
func (g *Game) drunkAction(ctx context.Context, player Participant) error {
	slot, err := g.chooseNum(ctx, player, g.centerSlots())
	if err != nil {
		return err
	}
	g.swap(PlayerTarget(player), CenterTarget(slot))
	return nil
}
