package game

// PlayerView is the drawable part of the player.
type PlayerView struct {
	X, Y       float64
	Vitality   float64
	Progress   float64
	Stunned    bool
	Expression Expression
}

// ObjectView is the drawable part of an object.
type ObjectView struct {
	ID   string
	Type ItemType
	X, Y float64 // centre
	W, H float64
}

// Snapshot is an immutable copy of everything a frame needs.
type Snapshot struct {
	Status        Status
	Outcome       Outcome
	Phase         Phase
	Theme         string
	Countdown     string
	TimeLeft      float64
	Elapsed       float64
	SkipAvailable bool
	LowVitality   bool
	Player        PlayerView
	PlayerRadius  float64
	Objects       []ObjectView
	Popups        []Popup
	Collected     map[ItemType]int
}

// Snapshot copies the current state for rendering. Nothing in the result
// aliases the Sim.
func (s *Sim) Snapshot() Snapshot {
	p := s.store.Player

	objects := make([]ObjectView, 0, s.store.Len())
	s.store.Each(func(o *GameObject) {
		objects = append(objects, ObjectView{
			ID:   o.ID,
			Type: o.Type,
			X:    o.X,
			Y:    o.Y,
			W:    o.W,
			H:    o.H,
		})
	})

	return Snapshot{
		Status:        s.status,
		Outcome:       s.outcome,
		Phase:         s.phase,
		Theme:         s.Theme(),
		Countdown:     s.countdown,
		TimeLeft:      s.TimeLeft(),
		Elapsed:       s.elapsed,
		SkipAvailable: s.SkipAvailable(),
		LowVitality:   p.Vitality < s.cfg.Player.LowVitality,
		Player: PlayerView{
			X:          p.X,
			Y:          p.Y,
			Vitality:   p.Vitality,
			Progress:   p.Progress,
			Stunned:    p.Stunned,
			Expression: p.Expression,
		},
		PlayerRadius: s.resolver.Radius(),
		Objects:      objects,
		Popups:       append([]Popup(nil), s.popups...),
		Collected:    s.Collected(),
	}
}
