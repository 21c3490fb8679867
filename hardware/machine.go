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

package hardware

import (
	"github.com/jetsetilly/gophervec/curated"
	"github.com/jetsetilly/gophervec/hardware/cpu"
	"github.com/jetsetilly/gophervec/hardware/input"
	"github.com/jetsetilly/gophervec/hardware/memory"
	"github.com/jetsetilly/gophervec/hardware/psg"
	"github.com/jetsetilly/gophervec/hardware/via"
	"github.com/jetsetilly/gophervec/hardware/video"
)

// Machine is the main container for the emulated components of the Vectrex.
type Machine struct {
	CPU   cpu.CPU
	Mem   *memory.Memory
	VIA   *via.VIA
	Video *video.Video
	PSG   *psg.PSG

	// peripherals
	Joystick *input.Joystick

	paused bool
}

// NewMachine creates a new Vectrex and everything associated with the
// hardware, and resets it ready for use.
//
// The mc6809 argument is the processor implementation to plug in; sysROM is
// the 8K executive/Mine Storm ROM; cart is the cartridge data, or nil to
// boot into the built-in game; sink is where PSG samples are sent, or nil
// for silent mode.
func NewMachine(mc6809 cpu.CPU, sysROM []uint8, cart []uint8, sink psg.SampleSink) (*Machine, error) {
	mac := &Machine{
		CPU:      mc6809,
		Joystick: input.NewJoystick(),
	}

	mac.VIA = via.NewVIA(mac.CPU, mac.Joystick)

	var err error
	mac.Mem, err = memory.NewMemory(mac.VIA, sysROM)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	if cart != nil {
		if err = mac.Mem.AttachCartridge(cart); err != nil {
			return nil, curated.Errorf("machine: %v", err)
		}
	}

	mac.Video = video.NewVideo(mac.VIA, mac.Joystick)
	mac.PSG = psg.NewPSG(mac.VIA, mac.Joystick, sink)

	mac.CPU.Attach(mac.Mem)
	mac.Reset()

	return mac, nil
}

// Reset emulates the reset button on the console.
func (mac *Machine) Reset() {
	mac.VIA.Reset()
	mac.Video.Reset()
	mac.PSG.Reset()
	mac.CPU.Reset()
}

// EmulateCycle steps the machine one cycle without sound. The component
// order is fixed: video first, so that the vector hardware sees the VIA
// state from the previous cycle; then the CPU; then the VIA, so that CPU
// register accesses become visible to the chip on the following cycle.
// Returns true at the 50Hz frame boundary.
func (mac *Machine) EmulateCycle() bool {
	render := mac.Video.EmulateCycle()
	mac.CPU.EmulateCycle()
	mac.VIA.EmulateCycle()
	return render
}

// RunUntilFrame runs the machine until the video circuitry signals the end
// of a frame, and returns the completed frame. At warp speed the PSG is not
// emulated.
func (mac *Machine) RunUntilFrame(warpSpeed bool) *video.Frame {
	for {
		frameDone := mac.Video.EmulateCycle()
		mac.CPU.EmulateCycle()
		mac.VIA.EmulateCycle()
		if !warpSpeed {
			mac.PSG.EmulateCycle()
		}
		if frameDone {
			break
		}
	}
	return mac.Video.GetFrame()
}

// SetPaused pauses and resumes the machine. The only direct effect is on
// the PSG, which suspends its sink; pausing of the emulation loop itself is
// the Runner's job.
func (mac *Machine) SetPaused(paused bool) {
	mac.paused = paused
	if paused {
		mac.PSG.PauseSound()
	} else {
		mac.PSG.ResumeSound()
	}
}

// Paused returns whether the machine is paused.
func (mac *Machine) Paused() bool {
	return mac.paused
}

// Dispose releases the resources held by the machine. The audio sink is
// closed.
func (mac *Machine) Dispose() error {
	return mac.PSG.Dispose()
}

func (mac *Machine) String() string {
	return mac.VIA.String()
}
