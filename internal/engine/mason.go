package engine

import "context"

// Mason (tier 4): sees every other player currently treated as a Mason.
func (g *Game) masonAction(ctx context.Context, self Role, player Participant) error {
	for _, p := range g.others(player) {
		if g.currentRole(p.Name()).EffectiveID() != self.ID() {
			continue
		}
		if err := g.revealTo(ctx, player, PlayerTarget(p)); err != nil {
			return err
		}
	}
	return nil
}
