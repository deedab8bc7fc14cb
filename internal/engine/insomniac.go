package engine

import "context"

// Insomniac (tier 9): looks at whatever card they hold at the end of the
// night.
func (g *Game) insomniacAction(ctx context.Context, player Participant) error {
	return g.revealTo(ctx, player, PlayerTarget(player))
}
