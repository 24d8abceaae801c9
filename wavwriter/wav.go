// Package wavwriter records the tone output to a WAV file.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/youpy/go-wav"
)

// WavWriter buffers unsigned 8-bit mono samples and encodes them when
// closed.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []wav.Sample
}

// New creates a WavWriter. Nothing is written until Close.
func New(filename string, sampleRate int) *WavWriter {
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]wav.Sample, 0),
	}
}

// Write appends a frame of samples.
func (aw *WavWriter) Write(frame []byte) {
	for _, s := range frame {
		w := wav.Sample{}
		w.Values[0] = int(s)
		aw.buffer = append(aw.buffer, w)
	}
}

// Samples returns the number of samples buffered so far.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// Close encodes the buffered samples to the file.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 1, uint32(aw.sampleRate), 8)
	if enc == nil {
		return fmt.Errorf("wavwriter: %s", "bad parameters for wav encoding")
	}

	if err := enc.WriteSamples(aw.buffer); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	return nil
}
