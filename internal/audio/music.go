package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/deadline-rush/internal/config"
)

// Music is a looping background track. A Music without a track is valid
// and does nothing.
type Music struct {
	mu      sync.Mutex
	out     *Output
	stream  beep.StreamSeekCloser
	format  beep.Format
	enabled bool
	volume  float64

	ctrl    *beep.Ctrl
	gain    *effects.Volume
	playing bool
	manual  bool
}

// LoadMusic decodes the configured track. WAV and MP3 are supported,
// chosen by file extension.
func LoadMusic(out *Output, cfg config.AudioConfig) (*Music, error) {
	m := &Music{
		out:     out,
		enabled: cfg.MusicEnabled,
		volume:  clampVolume(cfg.MusicVolume),
	}
	if cfg.MusicPath == "" {
		return m, nil
	}

	stream, format, err := decode(cfg.MusicPath)
	if err != nil {
		return m, err
	}
	m.stream = stream
	m.format = format
	return m, nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".mp3" {
		return nil, beep.Format{}, fmt.Errorf("audio: unsupported music format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: open music: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	if ext == ".wav" {
		stream, format, err = wav.Decode(f)
	} else {
		stream, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("audio: decode %s: %w", filepath.Base(path), err)
	}
	return stream, format, nil
}

// HasTrack reports whether a track was loaded.
func (m *Music) HasTrack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream != nil
}

// Play starts or resumes the track. When the speaker cannot be opened the
// music waits for a manual start, see NeedsManualStart.
func (m *Music) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.stream == nil || m.playing {
		return nil
	}

	if m.ctrl != nil {
		speaker.Lock()
		m.ctrl.Paused = false
		speaker.Unlock()
		m.playing = true
		return nil
	}

	if err := m.out.Open(); err != nil {
		m.manual = true
		return fmt.Errorf("audio: start music: %w", err)
	}

	loop := beep.Loop(-1, m.stream)
	var s beep.Streamer = loop
	if m.format.SampleRate != sampleRate {
		s = beep.Resample(4, m.format.SampleRate, sampleRate, loop)
	}
	m.gain = newVolume(s, m.volume)
	m.ctrl = &beep.Ctrl{Streamer: m.gain}
	if !m.out.Add(m.ctrl) {
		m.ctrl = nil
		m.manual = true
		return ErrNoOutput
	}
	m.playing = true
	m.manual = false
	return nil
}

// Stop pauses the track and rewinds it to the start.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Music) stopLocked() {
	m.playing = false
	if m.stream == nil {
		return
	}
	if m.ctrl == nil {
		_ = m.stream.Seek(0)
		return
	}
	speaker.Lock()
	m.ctrl.Paused = true
	_ = m.stream.Seek(0) // best-effort
	speaker.Unlock()
}

// Playing reports whether the track is running.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// NeedsManualStart reports whether the last automatic start failed and the
// player should be offered a way to start the music by hand.
func (m *Music) NeedsManualStart() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.manual && m.enabled && m.stream != nil
}

// SetEnabled turns music on or off. Turning it off stops the track.
func (m *Music) SetEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = on
	if !on {
		m.stopLocked()
	}
}

// Enabled reports whether music is on.
func (m *Music) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetVolume changes the volume, clamped to [0, 1]. It applies immediately
// to a playing track.
func (m *Music) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = clampVolume(v)
	if m.gain == nil {
		return
	}
	speaker.Lock()
	m.gain.Silent = m.volume <= 0
	if m.volume > 0 {
		m.gain.Volume = math.Log2(m.volume)
	}
	speaker.Unlock()
}

// Volume returns the music volume.
func (m *Music) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Close stops the track and releases the file.
func (m *Music) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	if m.stream == nil {
		return nil
	}
	err := m.stream.Close()
	m.stream = nil
	return err
}
