package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/deadline-rush/internal/config"
)

func newSpawner(t *testing.T, cfg config.GameConfig) *Spawner {
	t.Helper()
	s, err := NewSpawner(cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSpawner() error = %v", err)
	}
	return s
}

// rayHitsBox reports whether the ray from o along d enters the square
// [lo, hi]².
func rayHitsBox(ox, oy, dx, dy, lo, hi float64) bool {
	tmin, tmax := 0.0, math.Inf(1)
	for _, axis := range [][2]float64{{ox, dx}, {oy, dy}} {
		o, d := axis[0], axis[1]
		if d == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}
	return tmin <= tmax
}

func TestNewSpawnerRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.GameConfig)
	}{
		{"weight item", func(c *config.GameConfig) { c.Phases.Mid.Weights[0].Item = "homework" }},
		{"tracking item", func(c *config.GameConfig) { c.Phases.Mid.Tracking = []string{"cat"} }},
		{"expression", func(c *config.GameConfig) { c.Phases.Late.Expression = "bored" }},
		{"large item", func(c *config.GameConfig) { c.Items.Large = []string{"pizza"} }},
		{"rescue item", func(c *config.GameConfig) { c.Items.RescueItem = "nap" }},
		{"empty table", func(c *config.GameConfig) { c.Phases.Early.Weights = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(&cfg)
			if _, err := NewSpawner(cfg, rand.New(rand.NewSource(1))); err == nil {
				t.Error("NewSpawner() error = nil, expected an error")
			}
		})
	}
}

func TestSpawnerIntervalIsStrict(t *testing.T) {
	s := newSpawner(t, config.DefaultConfig())
	p := &PlayerState{X: 50, Y: 50, Vitality: 100}

	if _, ok := s.TrySpawn(PhaseEarly, epoch, 2.0, p); ok {
		t.Error("TrySpawn() at exactly the interval spawned")
	}
	if _, ok := s.TrySpawn(PhaseEarly, epoch, 0.01, p); !ok {
		t.Error("TrySpawn() past the interval did not spawn")
	}
	if _, ok := s.TrySpawn(PhaseEarly, epoch, 1.0, p); ok {
		t.Error("TrySpawn() right after a spawn should wait for the interval again")
	}

	s.Reset()
	if _, ok := s.TrySpawn(PhaseLate, epoch, 0.81, p); !ok {
		t.Error("TrySpawn() should use the late interval")
	}
}

func TestSpawnerEdgeItemsHeadForCentre(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newSpawner(t, cfg)
	p := &PlayerState{X: 5, Y: 5, Vitality: 100}

	for range 500 {
		o := s.Spawn(PhaseEarly, epoch, p)

		onEdge := (o.X == -10 || o.X == 110) && o.Y >= 5 && o.Y <= 95 ||
			(o.Y == -10 || o.Y == 110) && o.X >= 5 && o.X <= 95
		if !onEdge {
			t.Fatalf("%v spawned at (%v, %v), expected just outside an edge", o.Type, o.X, o.Y)
		}
		if speed := math.Hypot(o.VX, o.VY); math.Abs(speed-cfg.Phases.Early.ItemSpeed) > 1e-9 {
			t.Fatalf("%v speed = %v, expected %v", o.Type, speed, cfg.Phases.Early.ItemSpeed)
		}
		if !rayHitsBox(o.X, o.Y, o.VX, o.VY, 30, 70) {
			t.Fatalf("%v from (%v, %v) along (%v, %v) misses the aim box", o.Type, o.X, o.Y, o.VX, o.VY)
		}
	}
}

func TestSpawnerTrackingItemsAimAtPlayer(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newSpawner(t, cfg)
	p := &PlayerState{X: 20, Y: 80, Vitality: 100}

	tracked := 0
	for range 500 {
		o := s.Spawn(PhaseMid, epoch, p)
		if o.Type != ItemPhone && o.Type != ItemSocial {
			continue
		}
		tracked++

		dx, dy := p.X-o.X, p.Y-o.Y
		cross := dx*o.VY - dy*o.VX
		dot := dx*o.VX + dy*o.VY
		if math.Abs(cross) > 1e-6 || dot <= 0 {
			t.Fatalf("%v from (%v, %v) moves (%v, %v), expected toward the player", o.Type, o.X, o.Y, o.VX, o.VY)
		}
		if speed := math.Hypot(o.VX, o.VY); math.Abs(speed-cfg.Phases.Mid.ItemSpeed) > 1e-9 {
			t.Fatalf("%v speed = %v, expected %v", o.Type, speed, cfg.Phases.Mid.ItemSpeed)
		}
	}
	if tracked == 0 {
		t.Fatal("no tracking items spawned in 500 tries")
	}
}

func TestSpawnerSizes(t *testing.T) {
	s := newSpawner(t, config.DefaultConfig())
	p := &PlayerState{X: 50, Y: 50, Vitality: 100}

	want := map[ItemType]float64{
		ItemMaterial: 4, ItemSnack: 4, ItemSocial: 4, ItemCoffee: 4,
		ItemPhone: 6, ItemDinner: 6, ItemSearch: 6,
	}
	for _, phase := range []Phase{PhaseEarly, PhaseMid, PhaseLate} {
		for range 200 {
			o := s.Spawn(phase, epoch, p)
			if o.Type == ItemObstacle {
				continue
			}
			if o.W != want[o.Type] || o.H != want[o.Type] {
				t.Fatalf("%v size = %vx%v, expected %v", o.Type, o.W, o.H, want[o.Type])
			}
		}
	}
}

func TestSpawnerObstaclePlacement(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Phases.Late.Weights = []config.WeightConfig{{Item: "obstacle", Weight: 1}}
	s := newSpawner(t, cfg)
	p := &PlayerState{X: 50, Y: 50, Vitality: 5}

	for range 300 {
		o := s.Spawn(PhaseLate, epoch, p)
		if o.Type != ItemObstacle {
			t.Fatalf("Spawn() = %v, expected obstacle (never swapped for rescue)", o.Type)
		}
		if o.W != 25 || o.H != 15 || o.VX != 0 || o.VY != 0 {
			t.Fatalf("obstacle = %+v, expected a still 25x15 block", o)
		}
		r := o.Rect()
		const eps = 1e-9
		if r.X < 10-eps || r.X > 90+eps || r.Y < 10-eps || r.Y > 90+eps {
			t.Fatalf("obstacle top-left = (%v, %v), expected within [10, 90]", r.X, r.Y)
		}
	}
}

func TestSpawnerRescueWhenLow(t *testing.T) {
	tests := []struct {
		name     string
		vitality float64
		lo, hi   float64 // expected snack share
	}{
		{"healthy", 100, 0.27, 0.33},
		{"at threshold", 30, 0.27, 0.33},
		{"low", 10, 0.55, 0.61},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSpawner(t, config.DefaultConfig())
			p := &PlayerState{X: 50, Y: 50, Vitality: tc.vitality}

			const n = 10000
			snacks := 0
			for range n {
				if s.Spawn(PhaseEarly, epoch, p).Type == ItemSnack {
					snacks++
				}
			}
			if share := float64(snacks) / n; share < tc.lo || share > tc.hi {
				t.Errorf("snack share = %v, expected in [%v, %v]", share, tc.lo, tc.hi)
			}
		})
	}
}

func TestSpawnerLatePhaseKeepsObstaclesWhenLow(t *testing.T) {
	s := newSpawner(t, config.DefaultConfig())
	p := &PlayerState{X: 50, Y: 50, Vitality: 10}

	const n = 10000
	counts := make(map[ItemType]int)
	for range n {
		counts[s.Spawn(PhaseLate, epoch, p).Type]++
	}

	if share := float64(counts[ItemObstacle]) / n; share < 0.27 || share > 0.33 {
		t.Errorf("obstacle share = %v, expected about 0.3", share)
	}
	if counts[ItemSnack] == 0 {
		t.Error("no rescue snacks in the late phase")
	}
	for _, item := range []ItemType{ItemMaterial, ItemPhone, ItemDinner, ItemSocial} {
		if counts[item] != 0 {
			t.Errorf("late phase spawned %d %v", counts[item], item)
		}
	}
}
