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

package memory

import (
	"github.com/jetsetilly/gophervec/curated"
	"github.com/jetsetilly/gophervec/logger"
)

// sizes fixed by the console hardware.
const (
	SystemROMSize   = 0x2000
	RAMSize         = 0x0400
	MaxCartridgeLen = 0x8000
)

// Memory is the Vectrex memory map: a 65536 entry dispatch table of memory
// mapped chips. Every address has exactly one entry.
type Memory struct {
	// the dispatch table. the CPU masks addresses to 16 bits so indexing can
	// never be out of range
	Map [0x10000]Chip

	// the chips that keep their identity after mapping. the VIA is mapped
	// but owned elsewhere
	RAM *RAM
	ROM *ROM
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The via argument is the memory mapped face of the 6522; rom is the 8K
// system ROM.
func NewMemory(via Chip, rom []uint8) (*Memory, error) {
	if len(rom) != SystemROMSize {
		return nil, curated.Errorf("memory: system ROM must be %d bytes (is %d)", SystemROMSize, len(rom))
	}

	mem := &Memory{}

	// 0000-7fff cartridge ROM space. without a cartridge it is unconnected
	mem.MapChip(Unconnected{}, 0x0000, 0x7fff)

	// 8000-c7ff unmapped space
	mem.MapChip(Unconnected{}, 0x8000, 0xc7ff)

	// c800-cfff 1Kx8 RAM, shadowed twice
	mem.RAM = NewRAM(RAMSize)
	mem.MapChip(mem.RAM, 0xc800, 0xcfff)

	// d000-d7ff 6522 VIA, shadowed 128 times
	mem.MapChip(via, 0xd000, 0xd7ff)

	// d800-dfff both the RAM and the VIA are selected by reads/writes to
	// this area
	mem.MapChip(NewNotFullyDecoded(mem.RAM, via), 0xd800, 0xdfff)

	// e000-ffff 8Kx8 system ROM. e000-efff is the built-in game, f000-ffff
	// the executive
	mem.ROM = NewROM(rom)
	mem.MapChip(mem.ROM, 0xe000, 0xffff)

	return mem, nil
}

// MapChip places a chip over an (inclusive) address range, replacing any
// previous entries.
func (mem *Memory) MapChip(chip Chip, start uint16, end uint16) {
	for i := int(start); i <= int(end); i++ {
		mem.Map[i] = chip
	}
}

// AttachCartridge installs cartridge data as a ROM chip starting at address
// zero. The cartridge must be loaded before the machine is reset.
func (mem *Memory) AttachCartridge(data []uint8) error {
	if len(data) == 0 || len(data) > MaxCartridgeLen {
		return curated.Errorf("memory: cartridge must be between 1 and %d bytes (is %d)", MaxCartridgeLen, len(data))
	}

	mem.MapChip(NewROM(data), 0x0000, uint16(len(data)-1))
	logger.Logf("memory", "cartridge attached (%d bytes)", len(data))

	return nil
}

// Read the byte at the specified address.
func (mem *Memory) Read(address uint16) uint8 {
	return mem.Map[address].Read(address)
}

// Write a byte to the specified address.
func (mem *Memory) Write(address uint16, data uint8) {
	mem.Map[address].Write(address, data)
}
