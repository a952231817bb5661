package sensor

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

func init() {
	Register("wander", func(Options) Driver { return &wanderDriver{now: time.Now} })
}

// wanderRate is the frame rate of the synthetic tracker.
const wanderRate = 30

// wanderDriver fakes a tracker: the nose drifts along a slow Lissajous curve.
// Useful for demos and for trying the game without a camera.
type wanderDriver struct {
	now func() time.Time
}

func (d *wanderDriver) Load(context.Context) (Detector, error) { return FirstFace, nil }
func (d *wanderDriver) Close() error                           { return nil }

func (d *wanderDriver) Subscribe() (FrameSource, error) {
	return &wanderSource{start: d.now(), now: d.now}, nil
}

type wanderSource struct {
	start  time.Time
	now    func() time.Time
	closed atomic.Bool
}

func (s *wanderSource) Latest() (Frame, bool) {
	if s.closed.Load() {
		return Frame{}, false
	}
	// Quantize to the frame rate so repeated polls within one frame are
	// recognized as duplicates.
	t := math.Floor(s.now().Sub(s.start).Seconds()*wanderRate) / wanderRate
	return WanderFrame(t), true
}

func (s *wanderSource) Close() error {
	s.closed.Store(true)
	return nil
}

// WanderFrame returns the synthetic frame at video time t.
func WanderFrame(t float64) Frame {
	nose := Landmark{
		X: 0.5 + 0.35*math.Sin(t*0.7),
		Y: 0.5 + 0.35*math.Sin(t*1.1+math.Pi/4),
	}
	forehead := Landmark{X: nose.X, Y: nose.Y - 0.12}
	return Frame{
		Time:  t,
		Faces: [][]Landmark{{forehead, nose}},
	}
}
