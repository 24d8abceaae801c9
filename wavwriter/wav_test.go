package wavwriter

import (
	"os"
	"path/filepath"
	"testing"

	decoder "github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tone.wav")

	aw := New(file, 8000)
	aw.Write([]byte{0x80, 0xB0, 0x50})
	aw.Write([]byte{0x80})
	assert.Equal(t, 4, aw.Samples())

	assert.NoError(t, aw.Close())

	data, err := os.ReadFile(file)
	assert.NoError(t, err)
	assert.True(t, len(data) > 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestFormat(t *testing.T) {
	file := filepath.Join(t.TempDir(), "format.wav")

	aw := New(file, 22050)
	aw.Write(make([]byte, 100))
	assert.NoError(t, aw.Close())

	f, err := os.Open(file)
	assert.NoError(t, err)
	defer f.Close()

	dec := decoder.NewDecoder(f)
	assert.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(22050), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(8), dec.BitDepth)
}

func TestCloseBadPath(t *testing.T) {
	aw := New(filepath.Join(t.TempDir(), "missing", "tone.wav"), 8000)

	err := aw.Close()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "wavwriter")
}
