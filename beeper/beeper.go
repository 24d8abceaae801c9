// Package beeper turns the CHIP-8 tone signal into audio samples.
package beeper

const (
	// DefaultSampleRate is the output rate used by the host.
	DefaultSampleRate = 44100

	// DefaultPitch is the tone frequency in Hz.
	DefaultPitch = 440

	// FrameRate is the rate at which the tone signal is sampled, which is
	// also the rate the CHIP-8 timers count down at.
	FrameRate = 60

	// Silence is the unsigned 8-bit sample value for no output.
	Silence = 0x80

	amplitude = 0x30
)

// Beeper generates a square wave while the tone is on. Frames are phase
// continuous so that consecutive frames do not click.
type Beeper struct {
	sampleRate int
	pitch      int

	// position within the current wave period, in samples*pitch
	phase int
}

// New creates a Beeper. Non-positive values select the defaults.
func New(sampleRate, pitch int) *Beeper {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if pitch <= 0 {
		pitch = DefaultPitch
	}

	return &Beeper{
		sampleRate: sampleRate,
		pitch:      pitch,
	}
}

// SampleRate of the generated frames.
func (b *Beeper) SampleRate() int {
	return b.sampleRate
}

// FrameSize is the number of samples in one frame.
func (b *Beeper) FrameSize() int {
	return b.sampleRate / FrameRate
}

// Frame returns one frame of unsigned 8-bit mono samples.
func (b *Beeper) Frame(on bool) []byte {
	buf := make([]byte, b.FrameSize())

	if !on {
		for i := range buf {
			buf[i] = Silence
		}

		// restart the wave on the next tone
		b.phase = 0

		return buf
	}

	for i := range buf {
		if b.phase < b.sampleRate/2 {
			buf[i] = Silence + amplitude
		} else {
			buf[i] = Silence - amplitude
		}

		b.phase = (b.phase + b.pitch) % b.sampleRate
	}

	return buf
}
