package sensor

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// Landmarker is a lazily initialized handle to a backend's detector.
// Init may be called any number of times from any goroutine, including while
// a load is already in flight; the loader runs once per successful
// initialization.
type Landmarker struct {
	load   Loader
	logger *log.Logger
	group  singleflight.Group

	mu  sync.RWMutex
	det Detector
	err error
}

// NewLandmarker creates a handle that will use load on first Init.
func NewLandmarker(load Loader, logger *log.Logger) *Landmarker {
	if logger == nil {
		logger = log.Default()
	}
	return &Landmarker{load: load, logger: logger}
}

// Init loads the detector if it is not loaded yet and waits for the result.
// Concurrent callers share one load. A failed load is logged and leaves the
// handle not ready, so a later Init retries.
func (l *Landmarker) Init(ctx context.Context) error {
	if l.Ready() {
		return nil
	}

	_, err, _ := l.group.Do("init", func() (any, error) {
		if l.Ready() {
			return nil, nil
		}
		det, err := l.load(ctx)
		l.mu.Lock()
		defer l.mu.Unlock()
		if err != nil {
			l.err = err
			l.logger.Error("tracker failed to load", "err", err)
			return nil, err
		}
		l.det, l.err = det, nil
		l.logger.Info("tracker ready")
		return nil, nil
	})
	return err
}

// InitAsync starts Init in the background.
func (l *Landmarker) InitAsync(ctx context.Context) {
	go func() {
		//nolint:errcheck // logged by Init
		l.Init(ctx)
	}()
}

// Ready reports whether the detector is loaded.
func (l *Landmarker) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.det != nil
}

// Err returns the last load error, if the handle is not ready.
func (l *Landmarker) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Detector returns the loaded detector, or nil.
func (l *Landmarker) Detector() Detector {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.det
}
