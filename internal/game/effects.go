package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/deadline-rush/internal/core"
)

const statMax = 100

// ApplyEffect changes a stat. A zero duration applies the amount at once;
// otherwise the amount is queued and spread over duration seconds by
// TickEffects.
func (p *PlayerState) ApplyEffect(kind EffectKind, amount, duration float64) {
	if duration <= 0 {
		p.add(kind, amount)
		return
	}
	p.Effects = append(p.Effects, ActiveEffect{
		ID:       uuid.NewString(),
		Kind:     kind,
		Amount:   amount,
		Duration: duration,
	})
}

// TickEffects advances every queued effect by dt seconds.
// The final slice of an effect is trimmed to the time that was left, so an
// effect contributes exactly its Amount whatever the frame rate.
func (p *PlayerState) TickEffects(dt float64) {
	if dt <= 0 || len(p.Effects) == 0 {
		return
	}

	active := p.Effects[:0]
	for _, e := range p.Effects {
		step := min(dt, e.Duration-e.Elapsed)
		if step > 0 {
			p.add(e.Kind, e.Amount/e.Duration*step)
		}
		e.Elapsed += dt
		if e.Elapsed < e.Duration {
			active = append(active, e)
		}
	}
	clear(p.Effects[len(active):])
	p.Effects = active
}

// Decay drains vitality at rate per second.
func (p *PlayerState) Decay(rate, dt float64) {
	if rate <= 0 || dt <= 0 {
		return
	}
	p.add(EffectVitality, -rate*dt)
}

func (p *PlayerState) add(kind EffectKind, amount float64) {
	switch kind {
	case EffectVitality:
		p.Vitality = core.ClampF(p.Vitality+amount, 0, statMax)
	case EffectProgress:
		p.Progress = core.ClampF(p.Progress+amount, 0, statMax)
	}
}

// Stun freezes the avatar until now+d.
func (p *PlayerState) Stun(now time.Time, d time.Duration) {
	p.Stunned = true
	p.StunEnd = now.Add(d)
}

// SetExpression shows e until now+d.
func (p *PlayerState) SetExpression(e Expression, now time.Time, d time.Duration) {
	p.Expression = e
	p.ExpressionEnd = now.Add(d)
}

// ExpireStatus ends a stun whose time is up and returns the face to the
// phase default once a timed expression runs out.
func (p *PlayerState) ExpireStatus(now time.Time, phaseFace Expression) {
	if p.Stunned && now.After(p.StunEnd) {
		p.Stunned = false
	}
	if p.ExpressionEnd.IsZero() {
		p.Expression = phaseFace
		return
	}
	if now.After(p.ExpressionEnd) {
		p.Expression = phaseFace
		p.ExpressionEnd = time.Time{}
	}
}
