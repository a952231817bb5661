package sensor

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadline-rush/internal/core"
)

// Adapter samples nose positions for one session. It is polled from the
// simulation tick and never blocks.
type Adapter struct {
	lm     *Landmarker
	src    FrameSource
	logger *log.Logger

	lastTime float64
	hasLast  bool
	closed   atomic.Bool

	closeOnce sync.Once
	closeErr  error
}

// NewAdapter wraps a frame subscription.
func NewAdapter(lm *Landmarker, src FrameSource, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{lm: lm, src: src, logger: logger}
}

// Ready reports whether the tracker is loaded.
func (a *Adapter) Ready() bool {
	return a.lm.Ready()
}

// Sample returns the nose position from the latest frame. It reports false
// when the tracker is not ready, no frame is available, the frame was
// already sampled, no face is visible or detection failed.
func (a *Adapter) Sample() (Reading, bool) {
	if a.closed.Load() {
		return Reading{}, false
	}
	det := a.lm.Detector()
	if det == nil {
		return Reading{}, false
	}

	frame, ok := a.src.Latest()
	if !ok {
		return Reading{}, false
	}
	if a.hasLast && frame.Time == a.lastTime {
		return Reading{}, false
	}
	a.lastTime, a.hasLast = frame.Time, true

	marks, err := det.Detect(frame)
	if err != nil {
		a.logger.Debug("detection failed", "err", err)
		return Reading{}, false
	}
	if len(marks) <= NoseTip {
		return Reading{}, false
	}

	nose := marks[NoseTip]
	return Reading{
		X: core.ClampF(1-nose.X, 0, 1),
		Y: core.ClampF(nose.Y, 0, 1),
	}, true
}

// Close releases the frame subscription. It is safe to call more than once.
func (a *Adapter) Close() error {
	a.closeOnce.Do(func() {
		a.closed.Store(true)
		a.closeErr = a.src.Close()
	})
	return a.closeErr
}
