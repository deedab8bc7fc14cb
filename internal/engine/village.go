package engine

// Villager, Hunter and Tanner have no night action.

// villageWins is the default village condition: nobody died and no
// werewolf is in play, or at least one werewolf died.
func villageWins(g *Game, dead []deadCard) bool {
	if len(dead) == 0 && len(g.byType[TypeWerewolf]) == 0 {
		return true
	}
	for _, d := range dead {
		if d.role.Type() == TypeWerewolf {
			return true
		}
	}
	return false
}

// hunterAfterVote takes the Hunter's vote target down with them.
func hunterAfterVote(player string, votes map[string]string, dead map[string]bool) []voteAction {
	if !dead[player] {
		return nil
	}
	target, ok := votes[player]
	if !ok {
		return nil
	}
	return []voteAction{{kill: target}}
}

func tannerWins(player string, dead []deadCard) bool {
	for _, d := range dead {
		if d.player == player {
			return true
		}
	}
	return false
}

// tannerVetoes strips the werewolf team of a win the Tanner also got.
func tannerVetoes(player string, winners map[string]bool, roleOf func(string) Role) []string {
	if !winners[player] {
		return nil
	}
	var out []string
	for name := range winners {
		r := roleOf(name)
		if r.Type() == TypeWerewolf || r.EffectiveID() == KindMinion.String() {
			out = append(out, name)
		}
	}
	return out
}
