package engine

import "context"

// Minion (tier 3): sees who the werewolves are.
func (g *Game) minionAction(ctx context.Context, player Participant) error {
	_, err := g.revealType(ctx, player, TypeWerewolf)
	return err
}

// minionWins sides with the werewolves while any exist; otherwise the
// Minion only needs to survive.
func minionWins(g *Game, player string, dead []deadCard) bool {
	if len(g.byType[TypeWerewolf]) > 0 {
		return werewolfWins(dead)
	}
	for _, d := range dead {
		if d.player == player {
			return false
		}
	}
	return true
}
