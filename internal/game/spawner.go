package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/core"
)

type weightedItem struct {
	item   ItemType
	weight float64
}

// phaseTuning is a PhaseConfig with item names resolved.
type phaseTuning struct {
	decay    float64
	interval float64
	speed    float64
	face     Expression
	theme    string
	table    []weightedItem
	total    float64
	tracking map[ItemType]bool
}

func compileTuning(p config.PhaseConfig) (phaseTuning, error) {
	face, err := ParseExpression(p.Expression)
	if err != nil {
		return phaseTuning{}, err
	}

	t := phaseTuning{
		decay:    p.Decay,
		interval: p.SpawnInterval,
		speed:    p.ItemSpeed,
		face:     face,
		theme:    p.Theme,
		tracking: make(map[ItemType]bool, len(p.Tracking)),
	}
	for _, w := range p.Weights {
		item, err := ParseItemType(w.Item)
		if err != nil {
			return phaseTuning{}, err
		}
		t.table = append(t.table, weightedItem{item: item, weight: w.Weight})
		t.total += w.Weight
	}
	for _, name := range p.Tracking {
		item, err := ParseItemType(name)
		if err != nil {
			return phaseTuning{}, err
		}
		t.tracking[item] = true
	}
	return t, nil
}

// pick maps r in [0,1) onto the cumulative weights.
func (t phaseTuning) pick(r float64) ItemType {
	target := r * t.total
	acc := 0.0
	for _, w := range t.table {
		acc += w.weight
		if target < acc {
			return w.item
		}
	}
	return t.table[len(t.table)-1].item
}

// Spawner decides when and what enters the arena.
type Spawner struct {
	items       config.ItemsConfig
	phases      [3]phaseTuning
	large       map[ItemType]bool
	rescue      ItemType
	lowVitality float64
	rng         *rand.Rand
	timer       float64
}

// NewSpawner builds a spawner from the config. Unknown item or expression
// names are reported as errors.
func NewSpawner(cfg config.GameConfig, rng *rand.Rand) (*Spawner, error) {
	s := &Spawner{
		items:       cfg.Items,
		large:       make(map[ItemType]bool, len(cfg.Items.Large)),
		lowVitality: cfg.Player.LowVitality,
		rng:         rng,
	}

	for i := range s.phases {
		t, err := compileTuning(cfg.Phases.Stage(config.Stage(i)))
		if err != nil {
			return nil, fmt.Errorf("game: phase %s: %w", Phase(i), err)
		}
		if len(t.table) == 0 {
			return nil, fmt.Errorf("game: phase %s: empty spawn table", Phase(i))
		}
		s.phases[i] = t
	}

	for _, name := range cfg.Items.Large {
		item, err := ParseItemType(name)
		if err != nil {
			return nil, fmt.Errorf("game: large items: %w", err)
		}
		s.large[item] = true
	}

	rescue, err := ParseItemType(cfg.Items.RescueItem)
	if err != nil {
		return nil, fmt.Errorf("game: rescue item: %w", err)
	}
	s.rescue = rescue

	return s, nil
}

// Reset clears the spawn timer.
func (s *Spawner) Reset() {
	s.timer = 0
}

// TrySpawn advances the spawn timer by dt and returns a new object once the
// phase's interval has been exceeded.
func (s *Spawner) TrySpawn(phase Phase, now time.Time, dt float64, player *PlayerState) (GameObject, bool) {
	s.timer += dt
	if s.timer <= s.phases[phase].interval {
		return GameObject{}, false
	}
	s.timer = 0
	return s.Spawn(phase, now, player), true
}

// Spawn creates one object for the phase.
func (s *Spawner) Spawn(phase Phase, now time.Time, player *PlayerState) GameObject {
	tuning := s.phases[phase]
	item := s.draw(tuning, player.Vitality)

	if item == ItemObstacle {
		w, h := s.items.ObstacleWidth, s.items.ObstacleHeight
		left := s.items.ObstacleMin + s.rng.Float64()*s.items.ObstacleSpan
		top := s.items.ObstacleMin + s.rng.Float64()*s.items.ObstacleSpan
		return GameObject{
			ID:        uuid.NewString(),
			Type:      ItemObstacle,
			X:         left + w/2,
			Y:         top + h/2,
			W:         w,
			H:         h,
			CreatedAt: now,
		}
	}

	size := s.items.BaseSize
	if s.large[item] {
		size *= s.items.LargeScale
	}

	start := s.edgeStart()
	var target core.Vec
	if tuning.tracking[item] {
		target = core.Vec{X: player.X, Y: player.Y}
	} else {
		span := s.items.AimMax - s.items.AimMin
		target = core.Vec{
			X: s.items.AimMin + s.rng.Float64()*span,
			Y: s.items.AimMin + s.rng.Float64()*span,
		}
	}
	vel := core.Vec{X: target.X - start.X, Y: target.Y - start.Y}.Normalize().Scale(tuning.speed)

	return GameObject{
		ID:        uuid.NewString(),
		Type:      item,
		X:         start.X,
		Y:         start.Y,
		W:         size,
		H:         size,
		VX:        vel.X,
		VY:        vel.Y,
		CreatedAt: now,
	}
}

// draw picks an item type, swapping in the rescue item now and then while
// the player is running low.
func (s *Spawner) draw(tuning phaseTuning, vitality float64) ItemType {
	item := tuning.pick(s.rng.Float64())
	if vitality < s.lowVitality && item != ItemObstacle && s.rng.Float64() < s.items.RescueChance {
		return s.rescue
	}
	return item
}

// edgeStart picks one of the four edges and a point just outside it.
func (s *Spawner) edgeStart() core.Vec {
	along := s.items.EdgeMin + s.rng.Float64()*(s.items.EdgeMax-s.items.EdgeMin)
	outside := s.items.EdgeOffset

	switch s.rng.Intn(4) {
	case 0: // top
		return core.Vec{X: along, Y: -outside}
	case 1: // right
		return core.Vec{X: 100 + outside, Y: along}
	case 2: // bottom
		return core.Vec{X: along, Y: 100 + outside}
	default: // left
		return core.Vec{X: -outside, Y: along}
	}
}
