package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Roles whose copied action only needs the state of the current moment
// run straight away under the Doppelganger's tier.
var doppelgangerImmediate = map[RoleKind]bool{
	KindMinion:       true,
	KindSeer:         true,
	KindRobber:       true,
	KindTroublemaker: true,
	KindDrunk:        true,
}

// Roles whose copied action depends on later night state or on other
// holders of the same role run again at their own tier.
var doppelgangerDeferred = map[RoleKind]bool{
	KindWerewolf:  true,
	KindMason:     true,
	KindInsomniac: true,
}

// Doppelganger (tier 1): looks at another player's card and becomes that
// role for the rest of the game.
func (g *Game) doppelgangerAction(ctx context.Context, self *Role, player Participant) error {
	target, err := g.choosePlayer(ctx, player, g.others(player))
	if err != nil {
		return err
	}

	copied := g.currentRole(target.Name()).Clone()
	if c, ok := copied.Copied(); ok {
		copied = c
	}
	self.copied = &copied
	g.reindex(player.Name())

	if err := g.revealTo(ctx, player, PlayerTarget(target)); err != nil {
		return err
	}
	if err := player.ShowRole(ctx, PlayerTarget(player), self.Clone()); err != nil {
		return fmt.Errorf("show copied role to %s: %w", player.Name(), err)
	}

	g.log.Debug("doppelganger copied role",
		zap.String("player", player.Name()),
		zap.String("target", target.Name()),
		zap.String("role", copied.ID()))

	pris := copied.Priorities()
	if len(pris) == 0 {
		return nil
	}
	switch {
	case doppelgangerImmediate[copied.kind]:
		return g.actAs(ctx, self.copied, player, pris[0])
	case doppelgangerDeferred[copied.kind]:
		return g.agenda.Add(pris[0], NightAction{Card: g.held[player.Name()], Player: player})
	}
	return nil
}
