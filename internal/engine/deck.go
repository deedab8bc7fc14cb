package engine

import "math/rand/v2"

// shuffleRoles returns a shuffled copy of roles.
func shuffleRoles(roles []Role) []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// deal splits roles into one card per player followed by the center.
func deal(roles []Role, players int) (dealt, center []Role) {
	return roles[:players], roles[players:]
}
