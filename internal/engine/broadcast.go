package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// each calls fn for every target concurrently and waits for all of them.
// The first failure cancels the others' context and is returned.
func each(ctx context.Context, targets []Participant, fn func(context.Context, Participant) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, p := range targets {
		eg.Go(func() error {
			if err := fn(ctx, p); err != nil {
				return fmt.Errorf("%s: %w", p.Name(), err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// announce broadcasts a phase change to the whole table.
func (g *Game) announce(ctx context.Context, t Time) error {
	err := each(ctx, g.players, func(ctx context.Context, p Participant) error {
		return p.ShowTime(ctx, t)
	})
	if err != nil {
		return fmt.Errorf("announce %s: %w", t, err)
	}
	return nil
}

// SendHandshake greets every participant with the rest of the table and
// the multiset of role names in play.
func (g *Game) SendHandshake(ctx context.Context) error {
	roles := g.RoleCounts()
	err := each(ctx, g.players, func(ctx context.Context, p Participant) error {
		return p.Handshake(ctx, g.others(p), roles)
	})
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	return nil
}

// ShowAllRoles shows every participant the card they were dealt.
func (g *Game) ShowAllRoles(ctx context.Context) error {
	err := each(ctx, g.players, func(ctx context.Context, p Participant) error {
		return p.ShowRole(ctx, PlayerTarget(p), g.currentRole(p.Name()).Clone())
	})
	if err != nil {
		return fmt.Errorf("show roles: %w", err)
	}
	return nil
}

// SendMessage relays msg to everybody but its sender.
func (g *Game) SendMessage(ctx context.Context, msg Message) error {
	var targets []Participant
	for _, p := range g.players {
		if msg.Sender == nil || p.Name() != msg.Sender.Name() {
			targets = append(targets, p)
		}
	}
	err := each(ctx, targets, func(ctx context.Context, p Participant) error {
		return p.ReceiveMessage(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("relay message: %w", err)
	}
	return nil
}
