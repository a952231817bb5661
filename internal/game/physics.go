package game

import (
	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/core"
)

// Resolver moves objects and settles their contact with the player.
type Resolver struct {
	radius   float64 // player hitbox radius
	minBound float64
	maxBound float64
	push     float64
}

// NewResolver creates a resolver from the player and item settings.
func NewResolver(cfg config.GameConfig) *Resolver {
	return &Resolver{
		radius:   cfg.Player.Size / 2,
		minBound: cfg.Items.DespawnMin,
		maxBound: cfg.Items.DespawnMax,
		push:     cfg.Items.ObstaclePush,
	}
}

// Radius returns the player's hitbox radius.
func (r *Resolver) Radius() float64 {
	return r.radius
}

// Step integrates every live object over dt seconds and kills the ones that
// left the arena. When collide is set, overlapping obstacles shove the
// player and overlapping items are handed to catch and killed.
// A stunned player neither gets shoved nor catches anything; items it
// overlaps stay live.
func (r *Resolver) Step(store *Store, dt float64, collide bool, catch func(o *GameObject)) {
	p := &store.Player

	store.Each(func(o *GameObject) {
		if o.Type != ItemObstacle {
			o.X += o.VX * dt
			o.Y += o.VY * dt
		}

		if r.outside(o.X) || r.outside(o.Y) {
			o.Kill()
			return
		}

		if !collide || p.Stunned {
			return
		}

		if o.Type == ItemObstacle {
			r.shove(p, o)
			return
		}

		if core.CirclesOverlap(p.X, p.Y, r.radius, o.X, o.Y, o.W/2) {
			catch(o)
			o.Kill()
		}
	})
}

func (r *Resolver) outside(v float64) bool {
	return v < r.minBound || v > r.maxBound
}

// shove pushes the player away from the obstacle's centre while their boxes
// overlap. It runs every tick the overlap persists.
func (r *Resolver) shove(p *PlayerState, o *GameObject) {
	if !core.RectAround(p.X, p.Y, r.radius).Intersects(o.Rect()) {
		return
	}
	c := o.Center()
	dir := core.Vec{X: p.X - c.X, Y: p.Y - c.Y}.Normalize()
	p.X += dir.X * r.push
	p.Y += dir.Y * r.push
}
