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

package video

import (
	"fmt"

	"github.com/jetsetilly/gophervec/hardware/input"
	"github.com/jetsetilly/gophervec/hardware/via"
	"github.com/jetsetilly/gophervec/hardware/video/phosphors"
)

// The Vectrex has no video chip. The CRT is steered by analogue circuitry
// hanging off the VIA: port A feeds the DAC, the DAC feeds the X axis
// integrator directly and, through the multiplexer, the Y axis sample and
// hold, the X/Y offset and the Z (brightness) sample and hold. Port B bit 7
// is ~RAMP (integrate while low), CA2 is ~ZERO (snap the beam to centre
// while low) and CB2 is ~BLANK (beam off while low).
//
// The console has no concept of a frame either but the screen is refreshed
// at 50Hz, so the video emulation counts machine cycles and signals a frame
// boundary every 30000 cycles.
const (
	ClockFreq      = 1500000
	FrameRate      = 50
	CyclesPerFrame = ClockFreq / FrameRate
)

// Video emulates the analogue vector drawing circuitry.
type Video struct {
	via      *via.VIA
	joystick *input.Joystick

	// the phosphor trail, shared with the renderer
	Phosphors *phosphors.Ring

	// sample and hold state. all values are signed DAC units (-128 to 127)
	// except the Z sample and hold which is a brightness between 0 and 127
	xIntegrator int32
	yHold       int32
	xyOffset    int32
	zHold       uint8

	// the two frames of the double buffer. both reference the shared
	// phosphor ring; the handoff tells the renderer a frame's worth of new
	// dots is ready
	frames      [2]*Frame
	activeFrame int

	frameNum     int
	cycleInFrame int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(via *via.VIA, joystick *input.Joystick) *Video {
	vid := &Video{
		via:       via,
		joystick:  joystick,
		Phosphors: phosphors.NewRing(),
	}
	vid.frames[0] = &Frame{Phosphors: vid.Phosphors}
	vid.frames[1] = &Frame{Phosphors: vid.Phosphors}
	return vid
}

// Reset the video circuitry to its power-on state.
func (vid *Video) Reset() {
	vid.Phosphors = phosphors.NewRing()
	vid.frames[0] = &Frame{Phosphors: vid.Phosphors}
	vid.frames[1] = &Frame{Phosphors: vid.Phosphors}
	vid.activeFrame = 0
	vid.xIntegrator = 0
	vid.yHold = 0
	vid.xyOffset = 0
	vid.zHold = 0
	vid.frameNum = 0
	vid.cycleInFrame = 0
}

func (vid *Video) String() string {
	return fmt.Sprintf("gun=(%d,%d) xInt=%d yHold=%d xyOff=%d zHold=%d cycle=%d",
		vid.Phosphors.GunX(), vid.Phosphors.GunY(),
		vid.xIntegrator, vid.yHold, vid.xyOffset, vid.zHold,
		vid.cycleInFrame,
	)
}

// EmulateCycle ticks the vector circuitry forward one machine cycle.
// Returns true when the 50Hz frame boundary has been reached.
func (vid *Video) EmulateCycle() bool {
	portB := vid.via.PortBPins()
	portA := vid.via.PortAPins()

	// PB0 - MUX enable (0 = enabled, it is an inhibit signal)
	// PB1/PB2 - MUX channel select
	// PB7 - ~RAMP
	// CA2 - ~ZERO
	// CB2 - ~BLANK. asserting the line (low) hides the beam, which is how
	// the shift register draws patterned lines: each 1 bit shifted onto
	// CB2 lights a dot
	ramp := portB&0x80 == 0
	zero := vid.via.CA2() == 0
	blank := vid.via.CB2() == 0

	// the DAC has no enable; whatever is on port A is converted. the xor
	// turns the byte into a plus/minus value around the 2.5V bias
	dac := int32(int8(portA ^ 0x80))

	// the DAC always feeds the X axis integrator. there is no sample and
	// hold for X and it doesn't pass through the multiplexer
	vid.xIntegrator = dac

	muxEnabled := portB&0x01 == 0
	muxChannel := int(portB>>1) & 0x03

	if muxEnabled {
		switch muxChannel {
		case 0:
			// Y axis sample and hold
			vid.yHold = dac
		case 1:
			// X/Y axis integrator offset
			vid.xyOffset = dac
		case 2:
			// Z axis sample and hold (brightness)
			if d := portA ^ 0x80; d > 128 {
				vid.zHold = d - 128
			} else {
				vid.zHold = 0
			}
		case 3:
			// sound output line; of no consequence to the video circuit
		}
	}

	// the other half of the multiplexer digitises the joystick pots
	vid.joystick.ProcessMux(muxChannel, int(dac))

	var dx, dy int32
	if zero {
		dx = -vid.Phosphors.GunX()
		dy = -vid.Phosphors.GunY()
	} else if ramp {
		dx = vid.xIntegrator - vid.xyOffset
		dy = vid.yHold - vid.xyOffset
	}

	vid.Phosphors.Move(dx, dy, vid.zHold, !blank)

	vid.cycleInFrame++
	if vid.cycleInFrame >= CyclesPerFrame {
		vid.cycleInFrame = 0
		vid.frameNum++
		vid.publishFrame()
		return true
	}

	return false
}
