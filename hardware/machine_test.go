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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/gophervec/curated"
	"github.com/jetsetilly/gophervec/hardware"
	"github.com/jetsetilly/gophervec/hardware/cpu"
	"github.com/jetsetilly/gophervec/hardware/memory"
	"github.com/jetsetilly/gophervec/hardware/video"
	"github.com/jetsetilly/gophervec/test"
)

func newMachine(t *testing.T) (*hardware.Machine, *cpu.Stub) {
	t.Helper()
	mc6809 := cpu.NewStub()
	mac, err := hardware.NewMachine(mc6809, make([]uint8, memory.SystemROMSize), nil, nil)
	test.ExpectedSuccess(t, err)
	return mac, mc6809
}

func TestMachineCreation(t *testing.T) {
	mac, _ := newMachine(t)
	test.ExpectedFailure(t, mac.Mem == nil)
	test.ExpectedFailure(t, mac.VIA == nil)
	test.ExpectedFailure(t, mac.Video == nil)
	test.ExpectedFailure(t, mac.PSG == nil)
	test.ExpectedFailure(t, mac.Joystick == nil)

	// a bad system ROM stops the machine from starting
	_, err := hardware.NewMachine(cpu.NewStub(), make([]uint8, 100), nil, nil)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, "machine: %v"))

	// as does an oversized cartridge
	_, err = hardware.NewMachine(cpu.NewStub(), make([]uint8, memory.SystemROMSize),
		make([]uint8, memory.MaxCartridgeLen*2), nil)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.IsAny(err))
}

func TestRunUntilFrame(t *testing.T) {
	mac, mc6809 := newMachine(t)

	frame := mac.RunUntilFrame(false)
	test.ExpectedFailure(t, frame == nil)
	test.Equate(t, frame.FrameNum, 1)

	// one CPU cycle for every machine cycle in the frame
	test.Equate(t, mc6809.Cycles, video.CyclesPerFrame)

	frame = mac.RunUntilFrame(false)
	test.Equate(t, frame.FrameNum, 2)
	test.Equate(t, mc6809.Cycles, video.CyclesPerFrame*2)
}

func TestReset(t *testing.T) {
	mac, mc6809 := newMachine(t)

	_ = mac.RunUntilFrame(true)
	mac.Reset()
	test.Equate(t, mc6809.Cycles, 0)

	frame := mac.RunUntilFrame(true)
	test.Equate(t, frame.FrameNum, 1)
}

func TestIRQWiring(t *testing.T) {
	mac, mc6809 := newMachine(t)

	// program the VIA through the memory map: enable the timer 1 interrupt
	// and start a short one-shot
	mac.Mem.Write(0xd00e, 0x80|0x40)
	mac.Mem.Write(0xd004, 0x02)
	mac.Mem.Write(0xd005, 0x00)

	test.ExpectedFailure(t, mc6809.IRQ)
	for i := 0; i < 5; i++ {
		mac.EmulateCycle()
	}
	test.ExpectedSuccess(t, mc6809.IRQ)

	// servicing the interrupt by reading the counter releases the line
	_ = mac.Mem.Read(0xd004)
	test.ExpectedFailure(t, mc6809.IRQ)
}

func TestPause(t *testing.T) {
	mac, _ := newMachine(t)
	test.ExpectedFailure(t, mac.Paused())
	mac.SetPaused(true)
	test.ExpectedSuccess(t, mac.Paused())
	mac.SetPaused(false)
	test.ExpectedFailure(t, mac.Paused())
}
