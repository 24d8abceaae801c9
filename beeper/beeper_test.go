package beeper

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFrameSize(t *testing.T) {
	b := New(0, 0)

	assert.Equal(t, DefaultSampleRate, b.SampleRate())
	assert.Equal(t, DefaultSampleRate/FrameRate, len(b.Frame(true)))
	assert.Equal(t, DefaultSampleRate/FrameRate, len(b.Frame(false)))
}

func TestSilence(t *testing.T) {
	b := New(6000, 500)

	for _, s := range b.Frame(false) {
		assert.Equal(t, byte(Silence), s)
	}
}

func TestSquareWave(t *testing.T) {
	// 6000 Hz / 500 Hz is a 12 sample period, 6 high then 6 low
	b := New(6000, 500)
	frame := b.Frame(true)

	for i := 0; i < 6; i++ {
		assert.Equal(t, byte(Silence+amplitude), frame[i])
		assert.Equal(t, byte(Silence-amplitude), frame[i+6])
	}

	// 100 samples per frame leaves the next frame 4 samples into a period
	next := b.Frame(true)
	assert.Equal(t, byte(Silence+amplitude), next[1])
	assert.Equal(t, byte(Silence-amplitude), next[2])
}
