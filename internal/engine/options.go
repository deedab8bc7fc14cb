package engine

import "go.uber.org/zap"

// Options holds configuration for creating a new game.
type Options struct {
	LoneWolf      bool `json:"lone_wolf"`       // a lone werewolf may peek at a center card
	DebugSetRoles bool `json:"debug_set_roles"` // deal roles in the given order

	Logger *zap.Logger `json:"-"`
}

func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
