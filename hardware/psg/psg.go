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

package psg

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophervec/hardware/via"
)

// SampleSink accepts blocks of mono 16-bit PCM at SampleRate. Implementations
// include the live audio device and the WAV file writer.
type SampleSink interface {
	SetAudio(samples []int16) error
	EndMixing() error
}

// PauseSink is optionally implemented by a SampleSink that can suspend
// playback, for use when the machine is paused or running at warp speed.
type PauseSink interface {
	Pause(paused bool)
}

// ButtonReader supplies the state of the controller buttons for the I/O
// register. The joystick satisfies this interface.
type ButtonReader interface {
	ButtonState() uint8
}

// the 8912 shares the machine clock. one sample is produced every
// CyclesPerSample cycles.
const (
	ClockFreq       = 1500000
	SampleRate      = 22050
	CyclesPerSample = ClockFreq / SampleRate
)

// channel indices into the output, count and period arrays.
const (
	chanA = iota
	chanB
	chanC
	chanNoise
	chanEnvelope
)

// the amount of sample resolution given to each machine-clock event.
const step = 0x8000

// number of samples submitted to the sink at a time. about 10ms of audio.
const sampleBlockLen = ((((SampleRate / 20) * 2) / 10) * 10) / 10

// the DAC in the 8912 is logarithmic. with the divisor of 4 three channels
// at full volume sum to just under the 15 bit limit.
const levelDivisor = 4

var volumeLevels = [16]int{
	0x003c / levelDivisor, 0x0055 / levelDivisor, 0x0079 / levelDivisor, 0x00ab / levelDivisor,
	0x00f1 / levelDivisor, 0x0155 / levelDivisor, 0x01e3 / levelDivisor, 0x02aa / levelDivisor,
	0x03c5 / levelDivisor, 0x0555 / levelDivisor, 0x078b / levelDivisor, 0x0aab / levelDivisor,
	0x0f16 / levelDivisor, 0x1555 / levelDivisor, 0x1e2b / levelDivisor, 0x2aaa / levelDivisor,
}

// PSG is the AY-3-8912 chip.
type PSG struct {
	via     *via.VIA
	buttons ButtonReader
	sink    SampleSink

	// the 16 registers as last written
	Registers [16]uint8

	// square wave output state for A, B, C and the noise generator
	output [4]int

	// fractional event counters and periods for A, B, C, noise and envelope,
	// all scaled by updateStep
	count  [5]int
	period [5]int

	// channel volumes. envelope volume takes effect depending on the volume
	// mode bit of registers 8 to 10
	volumeA        int
	volumeB        int
	volumeC        int
	volumeEnvelope int

	// mixer settings from register 7
	enable          int
	disableToneA    bool
	disableToneB    bool
	disableToneC    bool
	disableAllNoise bool

	// noise generator state
	outNoise int
	random   int

	// envelope generator state
	countEnv  int
	hold      int
	alternate int
	attack    int
	holding   int

	// scale factor converting register periods into sample-integration units
	updateStep int

	// bus state
	busControl1  int
	busDirection int
	addressLatch int

	sampleBuffer       []int16
	sampleBufferOffset int
	cyclesToNextSample int
}

// NewPSG is the preferred method of initialisation for the PSG type. The
// register bus arrives through the via; buttons supplies the I/O register
// value. A nil sink selects silent mode.
func NewPSG(via *via.VIA, buttons ButtonReader, sink SampleSink) *PSG {
	psg := &PSG{
		via:     via,
		buttons: buttons,
		sink:    sink,
	}
	psg.Reset()
	return psg
}

// Reset the PSG to its power-on state. The sink is retained.
func (psg *PSG) Reset() {
	psg.updateStep = int(int64(step) * 8 * SampleRate / ClockFreq)
	psg.output = [4]int{0, 0, 0, 0xff}
	psg.count = [5]int{psg.updateStep, psg.updateStep, psg.updateStep, 0x7fff, psg.updateStep}
	psg.period = [5]int{psg.updateStep, psg.updateStep, psg.updateStep, psg.updateStep, 0}
	psg.Registers = [16]uint8{}

	psg.volumeA = 0
	psg.volumeB = 0
	psg.volumeC = 0
	psg.volumeEnvelope = 0
	psg.enable = 0
	psg.disableToneA = false
	psg.disableToneB = false
	psg.disableToneC = false
	psg.disableAllNoise = false
	psg.outNoise = 0
	psg.random = 1
	psg.countEnv = 0
	psg.hold = 0
	psg.alternate = 0
	psg.attack = 0
	psg.holding = 0
	psg.busControl1 = 0
	psg.busDirection = 0
	psg.addressLatch = 0

	psg.sampleBuffer = make([]int16, sampleBlockLen)
	psg.sampleBufferOffset = 0
	psg.cyclesToNextSample = CyclesPerSample
}

func (psg *PSG) String() string {
	s := strings.Builder{}
	for i, r := range psg.Registers {
		s.WriteString(fmt.Sprintf("R%d=%#02x ", i, r))
	}
	s.WriteString(fmt.Sprintf("latch=%d", psg.addressLatch))
	return s.String()
}

// EmulateCycle ticks the PSG forward one machine cycle: the bus control
// lines on VIA port B are serviced and, every CyclesPerSample cycles,
// another PCM sample is produced.
func (psg *PSG) EmulateCycle() {
	portB := psg.via.PortBPins()

	// BC1 is wired to VIA port B bit 3, BDIR to bit 4
	psg.busControl1 = int(portB>>3) & 0x01
	psg.busDirection = int(portB>>4) & 0x01

	if psg.busDirection == 1 {
		if psg.busControl1 == 1 {
			// address latch write
			psg.addressLatch = int(psg.via.PortAPins() & 0x0f)
		} else {
			// register write
			psg.WriteRegister(psg.addressLatch, psg.via.PortAPins())
		}
	} else if psg.busControl1 == 1 {
		// register read. the console uses this for the controller buttons
		psg.via.SetPortAPins(psg.ReadRegister(psg.addressLatch))
	}

	psg.cyclesToNextSample--
	if psg.cyclesToNextSample <= 0 {
		psg.writeSample()
		psg.cyclesToNextSample += CyclesPerSample
	}
}

// PauseSound suspends the sink, if the sink supports it. Invoked when the
// machine is paused or enters warp speed.
func (psg *PSG) PauseSound() {
	if snk, ok := psg.sink.(PauseSink); ok {
		snk.Pause(true)
	}
}

// ResumeSound resumes the sink, if the sink supports it.
func (psg *PSG) ResumeSound() {
	if snk, ok := psg.sink.(PauseSink); ok {
		snk.Pause(false)
	}
}

// Dispose releases the sink. No samples are submitted after this.
func (psg *PSG) Dispose() error {
	if psg.sink == nil {
		return nil
	}
	err := psg.sink.EndMixing()
	psg.sink = nil
	return err
}
