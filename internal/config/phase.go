package config

// Stage indexes the phases of a session in order: 0 early, 1 mid, 2 late.
type Stage int

// Stages in session order.
const (
	StageEarly Stage = iota
	StageMid
	StageLate
	StageCount
)

// Schedule resolves pacing parameters from the running time of a session.
// Stages only ever advance: once a session reached a stage, a later call
// with an earlier time keeps reporting it.
type Schedule struct {
	cfg     PhasesConfig
	reached Stage
}

// NewSchedule creates a schedule positioned at the early stage.
func NewSchedule(cfg PhasesConfig) *Schedule {
	return &Schedule{cfg: cfg}
}

// StageAt returns the stage for the given running seconds.
// Thresholds are strict: exactly MidAt is still early.
func (s *Schedule) StageAt(elapsed float64) Stage {
	switch {
	case elapsed > s.cfg.LateAt:
		return StageLate
	case elapsed > s.cfg.MidAt:
		return StageMid
	default:
		return StageEarly
	}
}

// Advance moves the schedule forward to the stage for elapsed and reports
// whether the stage changed.
func (s *Schedule) Advance(elapsed float64) (Stage, bool) {
	next := s.StageAt(elapsed)
	if next <= s.reached {
		return s.reached, false
	}
	s.reached = next
	return next, true
}

// Current returns the furthest stage reached.
func (s *Schedule) Current() Stage {
	return s.reached
}

// Reset rewinds to the early stage.
func (s *Schedule) Reset() {
	s.reached = StageEarly
}

// Tuning returns the pacing parameters of a stage.
func (s *Schedule) Tuning(stage Stage) PhaseConfig {
	return s.cfg.Stage(stage)
}

// Stage returns the phase config for a stage index.
func (c PhasesConfig) Stage(stage Stage) PhaseConfig {
	switch stage {
	case StageMid:
		return c.Mid
	case StageLate:
		return c.Late
	default:
		return c.Early
	}
}
