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

package psg_test

import (
	"testing"

	"github.com/jetsetilly/gophervec/hardware/input"
	"github.com/jetsetilly/gophervec/hardware/psg"
	"github.com/jetsetilly/gophervec/hardware/via"
	"github.com/jetsetilly/gophervec/test"
)

// recordingSink counts the sample blocks submitted by the PSG.
type recordingSink struct {
	blocks  int
	samples int
	ended   bool
}

func (snk *recordingSink) SetAudio(samples []int16) error {
	snk.blocks++
	snk.samples += len(samples)
	return nil
}

func (snk *recordingSink) EndMixing() error {
	snk.ended = true
	return nil
}

// newPSG returns a PSG wired to a VIA with both ports under CPU control.
func newPSG(snk psg.SampleSink) (*psg.PSG, *via.VIA, *input.Joystick) {
	v := via.NewVIA(nil, nil)
	joy := input.NewJoystick()
	p := psg.NewPSG(v, joy, snk)

	v.Write(2, 0xff)
	v.Write(3, 0xff)

	return p, v, joy
}

// busCycle drives one bus operation through the VIA: data on port A, BDIR
// and BC1 on port B bits 4 and 3.
func busCycle(p *psg.PSG, v *via.VIA, data uint8, bdir bool, bc1 bool) {
	v.Write(1, data)

	var orb uint8
	if bdir {
		orb |= 0x10
	}
	if bc1 {
		orb |= 0x08
	}
	v.Write(0, orb)

	p.EmulateCycle()
	v.EmulateCycle()
}

func TestBusProtocol(t *testing.T) {
	p, v, _ := newPSG(nil)

	// latch the mixer register address
	busCycle(p, v, 0x07, true, true)

	// write to the latched register: tone A enabled, tones B and C and all
	// noise disabled
	busCycle(p, v, 0x3e, true, false)
	test.Equate(t, p.Registers[7], 0x3e)

	// read back: the PSG drives port A, so the port must be set to input
	// first
	v.Write(3, 0x00)
	busCycle(p, v, 0x00, false, true)
	test.Equate(t, v.PortAPins(), 0x3e)

	// an idle bus leaves everything alone
	busCycle(p, v, 0xff, false, false)
	test.Equate(t, p.Registers[7], 0x3e)
}

func TestButtonsThroughIOPort(t *testing.T) {
	p, v, joy := newPSG(nil)

	// latch the I/O register and read it back through port A
	busCycle(p, v, 0x0e, true, true)
	v.Write(3, 0x00)
	busCycle(p, v, 0x00, false, true)
	test.Equate(t, v.PortAPins(), 0xff)

	// buttons are active low
	joy.KeyDown(input.KeyButton1)
	busCycle(p, v, 0x00, false, true)
	test.Equate(t, v.PortAPins(), 0xfe)

	joy.KeyDown(input.KeyButton4)
	joy.KeyUp(input.KeyButton1)
	busCycle(p, v, 0x00, false, true)
	test.Equate(t, v.PortAPins(), 0xf7)
}

func TestToneAndVolumeRegisterWrites(t *testing.T) {
	p, v, _ := newPSG(nil)

	// tone period for channel A: fine then coarse
	busCycle(p, v, 0x00, true, true)
	busCycle(p, v, 0xfe, true, false)
	test.Equate(t, p.Registers[0], 0xfe)

	busCycle(p, v, 0x01, true, true)
	busCycle(p, v, 0x0c, true, false)
	test.Equate(t, p.Registers[1], 0x0c)

	// the register stores the full byte; the period computation masks to
	// the low nibble
	busCycle(p, v, 0xfc, true, false)
	test.Equate(t, p.Registers[1], 0xfc)

	// volume registers
	busCycle(p, v, 0x08, true, true)
	busCycle(p, v, 0x0f, true, false)
	test.Equate(t, p.Registers[8], 0x0f)
}

func TestSampleCadence(t *testing.T) {
	snk := &recordingSink{}
	p, v, _ := newPSG(snk)

	// one sample is produced every CyclesPerSample cycles and blocks are
	// submitted when the sample buffer fills
	const blockSamples = 220
	total := psg.CyclesPerSample * blockSamples

	for i := 0; i < total-1; i++ {
		p.EmulateCycle()
		v.EmulateCycle()
	}
	test.Equate(t, snk.blocks, 0)

	p.EmulateCycle()
	test.Equate(t, snk.blocks, 1)
	test.Equate(t, snk.samples, blockSamples)

	// and again for the next block
	for i := 0; i < total; i++ {
		p.EmulateCycle()
	}
	test.Equate(t, snk.blocks, 2)
}

func TestDispose(t *testing.T) {
	snk := &recordingSink{}
	p, _, _ := newPSG(snk)

	test.ExpectedSuccess(t, p.Dispose())
	test.ExpectedSuccess(t, snk.ended)

	// disposing twice is harmless
	test.ExpectedSuccess(t, p.Dispose())
}
