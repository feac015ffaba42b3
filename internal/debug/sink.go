// Package debug carries intermediate segmentation buffers out of the pipeline
// for inspection.
package debug

import (
	"image"
	"sync"
)

// Imager is any intermediate buffer that can render itself.
type Imager interface {
	ToImage() image.Image
}

// Sink receives the output of every pipeline stage for one source image.
// Implementations must be safe for concurrent use; batch runs call Capture
// from several workers. buf may be modified by later stages, so it has to be
// rendered before Capture returns.
type Sink interface {
	Capture(source, stage string, buf Imager)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(source, stage string, buf Imager)

func (f SinkFunc) Capture(source, stage string, buf Imager) {
	f(source, stage, buf)
}

type nopSink struct{}

func (nopSink) Capture(string, string, Imager) {}

// Nop discards everything.
var Nop Sink = nopSink{}

type multiSink []Sink

func (m multiSink) Capture(source, stage string, buf Imager) {
	for _, s := range m {
		s.Capture(source, stage, buf)
	}
}

// Multi fans every capture out to sinks in order. Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return Nop
	}
	return out
}

// Capture is one recorded stage.
type Capture struct {
	Source string
	Stage  string
	Image  image.Image
}

// Recorder keeps every capture in memory, rendered at capture time.
type Recorder struct {
	mu       sync.Mutex
	captures []Capture
}

func (r *Recorder) Capture(source, stage string, buf Imager) {
	img := buf.ToImage()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captures = append(r.captures, Capture{Source: source, Stage: stage, Image: img})
}

// Captures returns a copy of everything recorded so far.
func (r *Recorder) Captures() []Capture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Capture(nil), r.captures...)
}

// Stages lists the recorded stage names for source, in capture order.
func (r *Recorder) Stages(source string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stages []string
	for _, c := range r.captures {
		if c.Source == source {
			stages = append(stages, c.Stage)
		}
	}
	return stages
}
