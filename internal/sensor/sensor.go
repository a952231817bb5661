// Package sensor turns face-landmark frames from an external tracker into
// normalized nose positions.
//
// A tracker (a browser page running a face mesh model, a python script, the
// built-in wander generator) produces frames of landmarks. A Landmarker wraps
// the expensive, load-once part of a backend and an Adapter samples the
// latest frame of one subscription, returning at most one Reading per new
// frame.
//
// Wire format of a frame (JSON text or msgpack binary websocket message):
//
//	{"t": 12.533, "faces": [[{"x": 0.41, "y": 0.37, "z": -0.02}, ...]]}
//
// t is the tracker's video time in seconds. Coordinates are normalized to the
// camera image, x growing to the right of the image.
package sensor

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// NoseTip is the landmark index of the nose tip in a face mesh.
const NoseTip = 1

// ErrClosed is returned when sampling a released frame source.
var ErrClosed = errors.New("sensor: source closed")

// Reading is a nose position normalized to [0,1] on both axes, mirrored so
// moving the head right moves the avatar right.
type Reading struct {
	X, Y float64
}

// Landmark is one point of a face mesh.
type Landmark struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Frame is one tracker result.
type Frame struct {
	Time  float64      `json:"t" msgpack:"t"`
	Faces [][]Landmark `json:"faces" msgpack:"faces"`
}

// FrameSource yields the most recent frame of one subscription.
type FrameSource interface {
	// Latest returns the newest frame without blocking.
	Latest() (Frame, bool)
	// Close releases the subscription.
	Close() error
}

// Detector extracts the landmarks of the first face in a frame. It returns
// nil landmarks and a nil error when the frame holds no face.
type Detector interface {
	Detect(f Frame) ([]Landmark, error)
}

// Loader brings up a backend's detector. It may be slow.
type Loader func(ctx context.Context) (Detector, error)

// FirstFace is a Detector for trackers that already ship landmarks.
var FirstFace Detector = firstFace{}

type firstFace struct{}

func (firstFace) Detect(f Frame) ([]Landmark, error) {
	if len(f.Faces) == 0 || len(f.Faces[0]) == 0 {
		return nil, nil
	}
	face := f.Faces[0]
	for i, l := range face {
		if !finite(l.X) || !finite(l.Y) {
			return nil, fmt.Errorf("sensor: landmark %d is not a number", i)
		}
	}
	return face, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
