package main

import (
	"fmt"

	"github.com/flake-8/emulator/beeper"
	"github.com/flake-8/emulator/wavwriter"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Square wave generator for the CHIP-8 tone.
	///
	Beeper *beeper.Beeper

	/// Queued audio device, 0 when audio could not be opened.
	///
	AudioDevice sdl.AudioDeviceID

	/// Optional recording of everything played.
	///
	Recorder *wavwriter.WavWriter
)

/// InitAudio opens an audio device for the CHIP-8 tone. The recorder is
/// created when a WAV file is given.
///
func InitAudio(wavFile string) error {
	Beeper = beeper.New(beeper.DefaultSampleRate, beeper.DefaultPitch)

	if wavFile != "" {
		Recorder = wavwriter.New(wavFile, Beeper.SampleRate())
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(Beeper.SampleRate()),
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  uint16(Beeper.FrameSize()),
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	AudioDevice = dev

	// start playing, silence until frames are queued
	sdl.PauseAudioDevice(AudioDevice, false)

	return nil
}

/// RefreshAudio queues one frame of the tone and records it.
///
func RefreshAudio(on bool) {
	frame := Beeper.Frame(on)

	if Recorder != nil {
		Recorder.Write(frame)
	}

	if AudioDevice == 0 {
		return
	}

	// keep latency low if the device falls behind
	if sdl.GetQueuedAudioSize(AudioDevice) > uint32(len(frame)*4) {
		sdl.ClearQueuedAudio(AudioDevice)
	}

	_ = sdl.QueueAudio(AudioDevice, frame)
}

/// CloseAudio shuts the device and writes the recording.
///
func CloseAudio() error {
	if AudioDevice != 0 {
		sdl.CloseAudioDevice(AudioDevice)
	}

	if Recorder != nil {
		return Recorder.Close()
	}

	return nil
}
