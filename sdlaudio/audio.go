// This file is part of GopherVec.
//
// GopherVec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherVec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherVec.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlaudio plays the PSG's sample stream through the host audio
// device using SDL. The device is acquired on creation and released by
// EndMixing().
package sdlaudio

import (
	"github.com/jetsetilly/gophervec/curated"
	"github.com/jetsetilly/gophervec/hardware/psg"
	"github.com/jetsetilly/gophervec/logger"

	"github.com/veandco/go-sdl2/sdl"
)

// the sample buffer requested from SDL. small enough to keep latency low;
// large enough that the queue doesn't starve between frames.
const bufferLength = 512

// Audio outputs sound using SDL. Implements the psg.SampleSink interface.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// byte conversion buffer, reused between SetAudio() calls
	raw []byte
}

// New is the preferred method of initialisation for the Audio type. An
// error means no audio device could be acquired; the caller is expected to
// continue with a nil sink (silent mode).
func New() (*Audio, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}

	aud := &Audio{}

	spec := &sdl.AudioSpec{
		Freq:     psg.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  uint16(bufferLength),
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}
	aud.spec = actualSpec

	sdl.PauseAudioDevice(aud.id, false)

	logger.Logf("sdlaudio", "audio device opened (%dHz)", aud.spec.Freq)

	return aud, nil
}

// SetAudio implements the psg.SampleSink interface.
func (aud *Audio) SetAudio(samples []int16) error {
	if len(aud.raw) < len(samples)*2 {
		aud.raw = make([]byte, len(samples)*2)
	}
	for i, s := range samples {
		aud.raw[i*2] = byte(s)
		aud.raw[i*2+1] = byte(s >> 8)
	}

	if err := sdl.QueueAudio(aud.id, aud.raw[:len(samples)*2]); err != nil {
		return curated.Errorf("sdlaudio: %v", err)
	}
	return nil
}

// Pause implements the psg.PauseSink interface.
func (aud *Audio) Pause(paused bool) {
	sdl.PauseAudioDevice(aud.id, paused)
}

// EndMixing implements the psg.SampleSink interface.
func (aud *Audio) EndMixing() error {
	sdl.CloseAudioDevice(aud.id)
	logger.Log("sdlaudio", "audio device closed")
	return nil
}
