// Package playback sends rendered blocks to the system audio device.
package playback

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// Source produces float samples on demand. It returns 0 when exhausted.
// *render.Renderer implements Source.
type Source interface {
	ReadFloat(dst []float32) int
}

// Stream adapts a Source to a little-endian float32 byte stream as
// consumed by the audio device. It is safe to Read from the device
// goroutine while another goroutine calls Frames.
type Stream struct {
	mu     sync.Mutex
	src    Source
	buf    []float32
	frames int
}

// NewStream wraps src.
func NewStream(src Source) *Stream {
	return &Stream{
		src: src,
		buf: make([]float32, 1024),
	}
}

// Read fills p with whole samples. It returns io.EOF after the source is
// exhausted.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := len(p) / 4
	if want == 0 {
		return 0, nil
	}
	if len(s.buf) < want {
		s.buf = make([]float32, want)
	}

	n := s.src.ReadFloat(s.buf[:want])
	if n == 0 {
		return 0, io.EOF
	}
	for i, v := range s.buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	s.frames += n
	return n * 4, nil
}

// Frames returns the number of samples delivered so far.
func (s *Stream) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
