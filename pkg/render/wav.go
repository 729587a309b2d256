package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// BitDepth is the PCM depth of written files. Q31 samples are stored
// unchanged.
const BitDepth = 32

const pcmFormat = 1

// ErrNotWAV is returned when a file has no valid WAV header.
var ErrNotWAV = errors.New("render: not a WAV file")

// Clip is a mono block of Q31 samples at a sample rate.
type Clip struct {
	SampleRate int
	Samples    []int32
}

// Seconds returns the clip duration.
func (c Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// EncodeWAV writes c as mono 32-bit PCM to w.
func EncodeWAV(w io.WriteSeeker, c Clip) error {
	data := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: c.SampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}

	e := wav.NewEncoder(w, c.SampleRate, BitDepth, 1, pcmFormat)
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("render: encoding failed: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("render: closing encoder: %w", err)
	}
	return nil
}

// WriteWAV writes c to the file fn.
func WriteWAV(fn string, c Clip) error {
	out, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("render: unable to create %s: %w", fn, err)
	}
	if err := EncodeWAV(out, c); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// DecodeWAV reads a mono or multichannel PCM stream and returns its first
// channel scaled to Q31.
func DecodeWAV(r io.ReadSeeker) (Clip, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Clip{}, ErrNotWAV
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("render: decoding failed: %w", err)
	}

	chans := buf.Format.NumChannels
	if chans < 1 {
		chans = 1
	}
	depth := int(d.BitDepth)
	if depth < 8 || depth > BitDepth {
		return Clip{}, fmt.Errorf("render: unsupported bit depth %d", depth)
	}
	shift := BitDepth - depth
	samples := make([]int32, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		v := buf.Data[i]
		if depth == 8 {
			v -= 128 // 8-bit PCM is unsigned
		}
		samples = append(samples, int32(v<<shift))
	}
	return Clip{SampleRate: buf.Format.SampleRate, Samples: samples}, nil
}

// ReadWAV reads the file fn.
func ReadWAV(fn string) (Clip, error) {
	f, err := os.Open(fn)
	if err != nil {
		return Clip{}, fmt.Errorf("render: couldn't open %s: %w", fn, err)
	}
	defer f.Close()
	return DecodeWAV(f)
}
