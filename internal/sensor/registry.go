package sensor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Driver is a tracker backend.
type Driver interface {
	// Load brings the backend up. It is called once per process through
	// the backend's Landmarker.
	Load(ctx context.Context) (Detector, error)
	// Subscribe opens a frame source for one session.
	Subscribe() (FrameSource, error)
	// Close shuts the backend down.
	Close() error
}

// Options configures a backend.
type Options struct {
	Addr   string // listen address for network backends
	Logger *log.Logger
}

// Factory creates a backend driver.
type Factory func(opts Options) Driver

// Backend is a running driver and its shared landmarker.
type Backend struct {
	Name       string
	Driver     Driver
	Landmarker *Landmarker
	logger     *log.Logger
}

var (
	factories = make(map[string]Factory)
	backends  = make(map[string]*Backend)
	mu        sync.Mutex
)

// Register adds a backend factory. Backends register themselves in init().
// Panics if the name is already taken.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("sensor: backend %q already registered", name))
	}
	factories[name] = f
}

// Names returns the registered backend names, sorted.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns the process-wide backend for name, creating it on first use.
// Every session of the process shares the backend and its landmarker, so the
// tracker loads once however many sessions start.
func Open(name string, opts Options) (*Backend, error) {
	mu.Lock()
	defer mu.Unlock()

	if b, ok := backends[name]; ok {
		return b, nil
	}

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("sensor: unknown backend %q", name)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("sensor")
	opts.Logger = logger

	drv := f(opts)
	b := &Backend{
		Name:       name,
		Driver:     drv,
		Landmarker: NewLandmarker(drv.Load, logger),
		logger:     logger,
	}
	backends[name] = b
	return b, nil
}

// NewAdapter starts loading the tracker in the background, if it is not
// loaded yet, and subscribes a new session to it.
func (b *Backend) NewAdapter(ctx context.Context) (*Adapter, error) {
	b.Landmarker.InitAsync(ctx)
	src, err := b.Driver.Subscribe()
	if err != nil {
		return nil, fmt.Errorf("sensor: subscribe to %s: %w", b.Name, err)
	}
	return NewAdapter(b.Landmarker, src, b.logger), nil
}

// CloseAll shuts down every opened backend.
func CloseAll() error {
	mu.Lock()
	defer mu.Unlock()

	var errs []error
	for name, b := range backends {
		if err := b.Driver.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		delete(backends, name)
	}
	return errors.Join(errs...)
}
