package engine

import (
	"fmt"
	"slices"
)

// RoleDef describes how many copies of a role a game may contain.
type RoleDef struct {
	Name string   `json:"name"`
	Kind RoleKind `json:"-"`
	Min  int      `json:"min_amt"`
	Max  int      `json:"max_amt"`
}

// New returns a fresh role for this definition.
func (d RoleDef) New() Role { return NewRole(d.Kind) }

// Registry maps role names to their definitions. It is the lookup
// surface for lobbies and the CLI; the engine itself does not use it.
type Registry struct {
	defs  map[string]RoleDef
	order []string
}

func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]RoleDef)}
	for _, k := range AllKinds() {
		def := RoleDef{Name: k.String(), Kind: k, Min: 1, Max: 1}
		if k == KindMason {
			def.Min, def.Max = 2, 2
		}
		r.Register(def)
	}
	return r
}

func (r *Registry) Register(def RoleDef) {
	if _, ok := r.defs[def.Name]; !ok {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

func (r *Registry) Get(name string) (RoleDef, error) {
	def, ok := r.defs[name]
	if !ok {
		return RoleDef{}, fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
	return def, nil
}

// Defs returns every definition in registration order.
func (r *Registry) Defs() []RoleDef {
	out := make([]RoleDef, len(r.order))
	for i, name := range r.order {
		out[i] = r.defs[name]
	}
	return out
}

// Build validates a requested role mix and instantiates it. A count of
// zero leaves the role out; any other count must lie within Min..Max.
// Roles come back in registration order.
func (r *Registry) Build(counts map[string]int) ([]Role, error) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		if _, err := r.Get(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return slices.Index(r.order, a) - slices.Index(r.order, b)
	})

	var roles []Role
	for _, name := range names {
		def, n := r.defs[name], counts[name]
		if n == 0 {
			continue
		}
		if n < def.Min || n > def.Max {
			return nil, fmt.Errorf("%w: %d x %s (allowed %d..%d)", ErrInvalidRoleMix, n, name, def.Min, def.Max)
		}
		for range n {
			roles = append(roles, def.New())
		}
	}
	return roles, nil
}
