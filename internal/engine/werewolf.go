package engine

import "context"

// Werewolf (tier 2): sees the other werewolves. A lone wolf may look at
// one center card when the option is on.
func (g *Game) werewolfAction(ctx context.Context, player Participant) error {
	n, err := g.revealType(ctx, player, TypeWerewolf)
	if err != nil {
		return err
	}
	if n > 0 || !g.opts.LoneWolf {
		return nil
	}
	slot, err := g.chooseNum(ctx, player, g.centerSlots())
	if err != nil {
		return err
	}
	return g.revealTo(ctx, player, CenterTarget(slot))
}

func werewolfWins(dead []deadCard) bool {
	for _, d := range dead {
		if d.role.Type() == TypeWerewolf {
			return false
		}
	}
	return true
}
