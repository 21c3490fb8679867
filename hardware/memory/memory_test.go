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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gophervec/curated"
	"github.com/jetsetilly/gophervec/hardware/memory"
	"github.com/jetsetilly/gophervec/hardware/via"
	"github.com/jetsetilly/gophervec/test"
)

// testROM returns an 8K system ROM filled with a recognisable pattern.
func testROM() []uint8 {
	rom := make([]uint8, memory.SystemROMSize)
	for i := range rom {
		rom[i] = uint8(i)
	}
	return rom
}

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	mem, err := memory.NewMemory(via.NewVIA(nil, nil), testROM())
	test.ExpectedSuccess(t, err)
	return mem
}

func TestMapIsComplete(t *testing.T) {
	mem := newMemory(t)
	for i := 0; i < 0x10000; i++ {
		if mem.Map[i] == nil {
			t.Fatalf("address %#04x has no chip", i)
		}
	}
}

func TestSystemROM(t *testing.T) {
	mem := newMemory(t)

	for _, a := range []uint16{0xe000, 0xe001, 0xf123, 0xffff} {
		test.Equate(t, mem.Read(a), int(uint8(a-0xe000)))
	}

	// writing a ROM address has no observable effect
	mem.Write(0xe000, 0xde)
	test.Equate(t, mem.Read(0xe000), 0x00)
}

func TestSystemROMSize(t *testing.T) {
	_, err := memory.NewMemory(via.NewVIA(nil, nil), make([]uint8, 0x1000))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.IsAny(err))
}

func TestRAMInitPattern(t *testing.T) {
	mem := newMemory(t)

	// bit 7 of the address selects the power-on fill value
	test.Equate(t, mem.Read(0xc800), 0x00)
	test.Equate(t, mem.Read(0xc87f), 0x00)
	test.Equate(t, mem.Read(0xc880), 0xff)
	test.Equate(t, mem.Read(0xc8ff), 0xff)
}

func TestRAMShadow(t *testing.T) {
	mem := newMemory(t)

	// the 1K RAM appears twice in the 2K window
	mem.Write(0xc801, 0x5a)
	test.Equate(t, mem.Read(0xcc01), 0x5a)
	mem.Write(0xcfff, 0xa5)
	test.Equate(t, mem.Read(0xcbff), 0xa5)
}

func TestUnconnected(t *testing.T) {
	mem := newMemory(t)

	test.Equate(t, mem.Read(0x0000), 0x00)
	test.Equate(t, mem.Read(0x9000), 0x00)
	mem.Write(0x9000, 0xff)
	test.Equate(t, mem.Read(0x9000), 0x00)
}

func TestCartridge(t *testing.T) {
	mem := newMemory(t)

	cart := make([]uint8, 0x1000)
	for i := range cart {
		cart[i] = uint8(i >> 4)
	}
	test.ExpectedSuccess(t, mem.AttachCartridge(cart))

	test.Equate(t, mem.Read(0x0000), 0x00)
	test.Equate(t, mem.Read(0x0fff), 0xff)

	// addresses beyond the cartridge remain unconnected
	test.Equate(t, mem.Read(0x1000), 0x00)

	// cartridge is read-only
	mem.Write(0x0000, 0x12)
	test.Equate(t, mem.Read(0x0000), 0x00)
}

func TestCartridgeSize(t *testing.T) {
	mem := newMemory(t)
	err := mem.AttachCartridge(make([]uint8, memory.MaxCartridgeLen+1))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.IsAny(err))

	test.ExpectedFailure(t, mem.AttachCartridge(nil))
}

func TestNotFullyDecoded(t *testing.T) {
	v := via.NewVIA(nil, nil)
	mem, err := memory.NewMemory(v, testROM())
	test.ExpectedSuccess(t, err)

	// RAM holds 0xaa at the offset shadowed by 0xd800
	mem.Write(0xc800, 0xaa)

	// VIA register 0 reads 0x0f: all of port B set as input with the low
	// four pins high
	v.SetPortBPins(0x0f)

	// both chips respond; the values AND together on the bus
	test.Equate(t, mem.Read(0xd800), 0xaa&0x0f)

	// a write goes to both chips
	mem.Write(0xd800, 0x55)
	test.Equate(t, mem.Read(0xc800), 0x55)
	test.Equate(t, v.ORB, 0x55)
}
