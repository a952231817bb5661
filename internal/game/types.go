// Package game implements the deadline simulation: the authoritative player
// and object state, item spawning, timed effects, collision handling and the
// loading -> warmup -> running -> outcome state machine.
//
// The package is pure: it reads a position sensor through an interface,
// advances on an injected dt and reports cues and outcomes as events. Drawing,
// sound and persistence live in the platform layer.
package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/deadline-rush/internal/core"
)

// ItemType is the closed set of things that fly through the arena.
type ItemType int

const (
	ItemMaterial ItemType = iota // study material, raises progress
	ItemSnack
	ItemPhone
	ItemDinner
	ItemSocial
	ItemCoffee
	ItemSearch
	ItemObstacle
	itemTypeCount
)

var itemNames = [itemTypeCount]string{
	ItemMaterial: "material",
	ItemSnack:    "snack",
	ItemPhone:    "phone",
	ItemDinner:   "dinner",
	ItemSocial:   "social",
	ItemCoffee:   "coffee",
	ItemSearch:   "search",
	ItemObstacle: "obstacle",
}

// String returns the config name of the item.
func (t ItemType) String() string {
	if t < 0 || t >= itemTypeCount {
		return "unknown"
	}
	return itemNames[t]
}

// ParseItemType maps a config name to an ItemType.
func ParseItemType(name string) (ItemType, error) {
	for i, n := range itemNames {
		if n == name {
			return ItemType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown item type %q", name)
}

// ItemTypes lists every item type in declaration order.
func ItemTypes() []ItemType {
	out := make([]ItemType, itemTypeCount)
	for i := range out {
		out[i] = ItemType(i)
	}
	return out
}

// Glyph returns the character used to draw the item.
func (t ItemType) Glyph() rune {
	switch t {
	case ItemMaterial:
		return '≡'
	case ItemSnack:
		return '%'
	case ItemPhone:
		return '▯'
	case ItemDinner:
		return '&'
	case ItemSocial:
		return '@'
	case ItemCoffee:
		return 'U'
	case ItemSearch:
		return '?'
	case ItemObstacle:
		return '▓'
	default:
		return '*'
	}
}

// Label is the short human name shown in the rules screen and results.
func (t ItemType) Label() string {
	switch t {
	case ItemMaterial:
		return "Study notes"
	case ItemSnack:
		return "Snack"
	case ItemPhone:
		return "Phone"
	case ItemDinner:
		return "Dinner"
	case ItemSocial:
		return "Group chat"
	case ItemCoffee:
		return "Coffee"
	case ItemSearch:
		return "Web search"
	case ItemObstacle:
		return "Drowsiness"
	default:
		return "?"
	}
}

// Phase is a time segment of the running session.
type Phase int

const (
	PhaseEarly Phase = iota
	PhaseMid
	PhaseLate
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	case PhaseLate:
		return "late"
	default:
		return "unknown"
	}
}

// Status is the state of a session.
type Status int

const (
	StatusLoading Status = iota // waiting for the tracker
	StatusWarmup                // countdown, no clock
	StatusRunning
	StatusFailed    // vitality ran out
	StatusSucceeded // progress reached 100
	StatusExpired   // the deadline passed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusWarmup:
		return "warmup"
	case StatusRunning:
		return "running"
	case StatusFailed:
		return "failed"
	case StatusSucceeded:
		return "succeeded"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (s Status) Terminal() bool {
	return s >= StatusFailed
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFailed
	OutcomeSucceeded
	OutcomeExpired
)

// String returns the outcome name stored in the results history.
func (o Outcome) String() string {
	switch o {
	case OutcomeFailed:
		return "failed"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeExpired:
		return "expired"
	default:
		return "none"
	}
}

// Headline returns the result screen text for the outcome.
func (o Outcome) Headline() string {
	switch o {
	case OutcomeFailed:
		return "You worked yourself to exhaustion."
	case OutcomeSucceeded:
		return "Homework done, just in time!"
	case OutcomeExpired:
		return "The deadline passed and the homework is not done."
	default:
		return ""
	}
}

// Expression is the avatar's face.
type Expression int

const (
	ExprCalm Expression = iota
	ExprSleepy
	ExprPanic
	ExprExcited
	ExprDelighted
	ExprHappy
	ExprSad
)

var expressionNames = map[string]Expression{
	"calm":      ExprCalm,
	"sleepy":    ExprSleepy,
	"panic":     ExprPanic,
	"excited":   ExprExcited,
	"delighted": ExprDelighted,
	"happy":     ExprHappy,
	"sad":       ExprSad,
}

// ParseExpression maps a config name to an Expression.
func ParseExpression(name string) (Expression, error) {
	e, ok := expressionNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown expression %q", name)
	}
	return e, nil
}

// Symbol returns the emoji for terminals that render it.
func (e Expression) Symbol() string {
	switch e {
	case ExprSleepy:
		return "🥱"
	case ExprPanic:
		return "😱"
	case ExprExcited:
		return "🤩"
	case ExprDelighted:
		return "😋"
	case ExprHappy:
		return "😄"
	case ExprSad:
		return "😞"
	default:
		return "🙂"
	}
}

// Face returns a single-cell rendition for the arena grid.
func (e Expression) Face() rune {
	switch e {
	case ExprSleepy:
		return 'z'
	case ExprPanic:
		return '!'
	case ExprExcited:
		return '*'
	case ExprDelighted:
		return '♥'
	case ExprHappy:
		return '☺'
	case ExprSad:
		return '☹'
	default:
		return '☻'
	}
}

// EffectKind selects which stat an effect changes.
type EffectKind int

const (
	EffectVitality EffectKind = iota
	EffectProgress
)

// Tone colors a floating message.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
)

// Cue is a sound the platform should play.
type Cue int

const (
	CueProgress Cue = iota
	CueVitalityGain
	CueVitalityLoss
	CueAlert
	CueCountdownTick
	CueCountdownGo
	CueFail
	CueSuccess
	CueTimeout
	CueCount
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueProgress:
		return "progress"
	case CueVitalityGain:
		return "vitality-gain"
	case CueVitalityLoss:
		return "vitality-loss"
	case CueAlert:
		return "alert"
	case CueCountdownTick:
		return "countdown-tick"
	case CueCountdownGo:
		return "countdown-go"
	case CueFail:
		return "stinger-fail"
	case CueSuccess:
		return "stinger-success"
	case CueTimeout:
		return "stinger-timeout"
	default:
		return "unknown"
	}
}

// GameObject is an item or obstacle in the arena.
// A zero CreatedAt marks the object dead; it is purged at the end of the tick.
type GameObject struct {
	ID        string
	Type      ItemType
	X, Y      float64 // centre
	W, H      float64
	VX, VY    float64 // arena percent per second
	CreatedAt time.Time
}

// Dead reports whether the object is waiting to be purged.
func (o *GameObject) Dead() bool {
	return o.CreatedAt.IsZero()
}

// Kill marks the object for removal.
func (o *GameObject) Kill() {
	o.CreatedAt = time.Time{}
}

// Rect returns the object's bounding box.
func (o *GameObject) Rect() core.Rect {
	return core.NewRect(o.X-o.W/2, o.Y-o.H/2, o.W, o.H)
}

// Center returns the middle of the object.
func (o *GameObject) Center() core.Vec {
	return core.Vec{X: o.X, Y: o.Y}
}

// ActiveEffect spreads Amount over Duration seconds.
type ActiveEffect struct {
	ID       string
	Kind     EffectKind
	Amount   float64
	Duration float64
	Elapsed  float64
}

// PlayerState is the avatar and its stats.
type PlayerState struct {
	X, Y          float64
	Vitality      float64
	Progress      float64
	Stunned       bool
	StunEnd       time.Time
	Expression    Expression
	ExpressionEnd time.Time
	Effects       []ActiveEffect
}

// Popup is a floating message near where something happened.
type Popup struct {
	ID        string
	Text      string
	X, Y      float64
	Tone      Tone
	CreatedAt time.Time
}

// EventKind selects what an Event asks the platform to do.
type EventKind int

const (
	EventCue EventKind = iota
	EventMusicStart
	EventMusicStop
)

// Event is a side effect produced by a tick.
type Event struct {
	Kind EventKind
	Cue  Cue
}

// StepResult is returned by Sim.Step after each tick.
type StepResult struct {
	Status  Status
	Outcome Outcome // set on the tick the session ends, OutcomeNone otherwise
	Events  []Event
}
