package sensor

import "context"

func init() {
	Register("none", func(Options) Driver { return noneDriver{} })
}

// noneDriver is the camera-less backend: it is ready at once and never sees
// a face, so the avatar stays where it is.
type noneDriver struct{}

func (noneDriver) Load(context.Context) (Detector, error) { return FirstFace, nil }
func (noneDriver) Subscribe() (FrameSource, error)        { return emptySource{}, nil }
func (noneDriver) Close() error                           { return nil }

type emptySource struct{}

func (emptySource) Latest() (Frame, bool) { return Frame{}, false }
func (emptySource) Close() error          { return nil }
