package game

import "time"

// Reaction is what happens when the player catches an item.
type Reaction struct {
	Effect   EffectKind
	Amount   float64
	Over     float64 // seconds to spread Amount over; 0 applies at once
	Stun     time.Duration
	Face     Expression
	FaceFor  time.Duration // 0 leaves the face alone
	Cue      Cue
	Text     string
	Tone     Tone
	TextRise float64 // popup offset above the catch point
}

// reactions is keyed by item type. Types with more than one entry pick one
// uniformly at random. Obstacles are never consumed and have no entry.
var reactions = map[ItemType][]Reaction{
	ItemMaterial: {{
		Effect: EffectProgress, Amount: 10,
		Cue: CueProgress, Text: "+10% progress", Tone: ToneGood, TextRise: 10,
	}},
	ItemSnack: {{
		Effect: EffectVitality, Amount: 10,
		Cue: CueVitalityGain, Text: "+10% vitality", Tone: ToneGood, TextRise: 10,
	}},
	ItemPhone: {{
		Effect: EffectVitality, Amount: -10, Over: 1.5,
		Stun: 1500 * time.Millisecond, Face: ExprExcited, FaceFor: 1500 * time.Millisecond,
		Cue: CueVitalityLoss, Text: "Doomscrolling...", Tone: ToneBad, TextRise: 10,
	}},
	ItemDinner: {{
		Effect: EffectVitality, Amount: 30, Over: 1.5,
		Stun: 1500 * time.Millisecond, Face: ExprDelighted, FaceFor: 1500 * time.Millisecond,
		Cue: CueVitalityGain, Text: "Delicious!", Tone: ToneGood, TextRise: 10,
	}},
	ItemSocial: {
		{
			Effect: EffectProgress, Amount: 20,
			Face: ExprHappy, FaceFor: time.Second,
			Cue: CueProgress, Text: "Useful message!", Tone: ToneGood, TextRise: 15,
		},
		{
			Effect: EffectVitality, Amount: -20,
			Face: ExprSad, FaceFor: time.Second,
			Cue: CueVitalityLoss, Text: "Just spam...", Tone: ToneBad, TextRise: 15,
		},
	},
	ItemCoffee: {{
		Effect: EffectVitality, Amount: 10,
		Cue: CueVitalityGain, Text: "Coffee refill", Tone: ToneGood, TextRise: 10,
	}},
	ItemSearch: {{
		Effect: EffectProgress, Amount: 20, Over: 3, Stun: 3 * time.Second,
		Cue: CueProgress, Text: "Searching...", Tone: ToneNeutral, TextRise: 10,
	}},
}

// Reactions returns the possible reactions for an item type.
func Reactions(t ItemType) []Reaction {
	return reactions[t]
}

// Apply runs the reaction's stun, face and stat change against the player.
func (r Reaction) Apply(p *PlayerState, now time.Time) {
	if r.Stun > 0 {
		p.Stun(now, r.Stun)
	}
	if r.FaceFor > 0 {
		p.SetExpression(r.Face, now, r.FaceFor)
	}
	p.ApplyEffect(r.Effect, r.Amount, r.Over)
}
