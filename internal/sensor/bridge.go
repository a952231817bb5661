package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

func init() {
	Register("bridge", func(opts Options) Driver { return NewBridge(opts) })
}

// DefaultBridgeAddr is where the bridge listens unless told otherwise.
const DefaultBridgeAddr = "127.0.0.1:8765"

const (
	readLimit = 1 << 20
	readWait  = 60 * time.Second
	pingEvery = 25 * time.Second
	writeWait = 10 * time.Second
)

// Bridge receives frames from an external tracker over a websocket.
// Only the latest frame is kept; every subscriber sees the same frame.
type Bridge struct {
	addr     string
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	latest Frame
	have   bool

	frames  atomic.Uint64
	clients atomic.Int32

	srvMu sync.Mutex
	srv   *http.Server
	bound net.Addr
}

// NewBridge creates a bridge. Nothing listens until Load.
func NewBridge(opts Options) *Bridge {
	addr := opts.Addr
	if addr == "" {
		addr = DefaultBridgeAddr
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{
		addr:   addr,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Trackers run as local pages or scripts on arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the bridge routes.
func (b *Bridge) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/landmarks", b.handleLandmarks).Methods(http.MethodGet)
	r.HandleFunc("/healthz", b.handleHealth).Methods(http.MethodGet)
	return r
}

// Load starts listening. The tracker counts as loaded once the listener is up.
func (b *Bridge) Load(ctx context.Context) (Detector, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", b.addr)
	if err != nil {
		return nil, fmt.Errorf("sensor: bridge listen %s: %w", b.addr, err)
	}

	srv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	b.srvMu.Lock()
	b.srv = srv
	b.bound = ln.Addr()
	b.srvMu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("sensor bridge stopped", "err", err)
		}
	}()

	b.logger.Info("sensor bridge listening", "addr", ln.Addr().String())
	return FirstFace, nil
}

// Addr returns the bound address, or the configured one before Load.
func (b *Bridge) Addr() string {
	b.srvMu.Lock()
	defer b.srvMu.Unlock()
	if b.bound != nil {
		return b.bound.String()
	}
	return b.addr
}

// Subscribe returns a view of the latest frame.
func (b *Bridge) Subscribe() (FrameSource, error) {
	return &bridgeSource{bridge: b}, nil
}

// Close stops the listener and drops tracker connections.
func (b *Bridge) Close() error {
	b.srvMu.Lock()
	srv := b.srv
	b.srv = nil
	b.srvMu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("sensor: bridge shutdown: %w", err)
	}
	return nil
}

// Publish replaces the latest frame.
func (b *Bridge) Publish(f Frame) {
	b.mu.Lock()
	b.latest, b.have = f, true
	b.mu.Unlock()
	b.frames.Add(1)
}

// Latest returns the newest frame received from any tracker.
func (b *Bridge) Latest() (Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest, b.have
}

func (b *Bridge) handleLandmarks(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("tracker upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	b.clients.Add(1)
	defer b.clients.Add(-1)
	b.logger.Info("tracker connected", "remote", r.RemoteAddr)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	done := make(chan struct{})
	defer close(done)
	go b.pingLoop(conn, done)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Warn("tracker connection lost", "remote", r.RemoteAddr, "err", err)
			} else {
				b.logger.Info("tracker disconnected", "remote", r.RemoteAddr)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))

		frame, err := DecodeFrame(kind, data)
		if err != nil {
			b.logger.Debug("dropping tracker message", "err", err)
			continue
		}
		b.Publish(frame)
	}
}

// pingLoop keeps idle tracker connections alive. It is the only writer on
// the connection.
func (b *Bridge) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

type health struct {
	Status  string `json:"status"`
	Clients int32  `json:"clients"`
	Frames  uint64 `json:"frames"`
}

func (b *Bridge) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Best-effort response
	json.NewEncoder(w).Encode(health{
		Status:  "ok",
		Clients: b.clients.Load(),
		Frames:  b.frames.Load(),
	})
}

// bridgeSource is one session's view of the bridge.
type bridgeSource struct {
	bridge *Bridge
	closed atomic.Bool
}

func (s *bridgeSource) Latest() (Frame, bool) {
	if s.closed.Load() {
		return Frame{}, false
	}
	return s.bridge.Latest()
}

func (s *bridgeSource) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}
	return nil
}
