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

// Chip is implemented by everything that can be placed in the memory map:
// RAM, ROM, the VIA, unconnected space. Addresses are passed unreduced; each
// chip applies its own mirroring rule.
type Chip interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// ROM is a read-only chip. Writes have no effect. Addresses are reduced
// modulo the chip size.
type ROM struct {
	data []uint8
}

// NewROM is the preferred method of initialisation for the ROM type. The
// byte slice is used directly, not copied.
func NewROM(data []uint8) *ROM {
	return &ROM{data: data}
}

// Read implements the Chip interface.
func (rom *ROM) Read(address uint16) uint8 {
	return rom.data[int(address)%len(rom.data)]
}

// Write implements the Chip interface.
func (rom *ROM) Write(address uint16, data uint8) {
	// has no effect
}

// RAM is a read/write chip. Addresses are reduced modulo the chip size.
type RAM struct {
	data []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type. The
// chip powers up with the pattern seen on real hardware: 0xff where bit 7 of
// the address is set, 0x00 everywhere else.
func NewRAM(size int) *RAM {
	ram := &RAM{data: make([]uint8, size)}
	for i := range ram.data {
		if i&0x80 != 0 {
			ram.data[i] = 0xff
		}
	}
	return ram
}

// Read implements the Chip interface.
func (ram *RAM) Read(address uint16) uint8 {
	return ram.data[int(address)%len(ram.data)]
}

// Write implements the Chip interface.
func (ram *RAM) Write(address uint16, data uint8) {
	ram.data[int(address)%len(ram.data)] = data
}

// Unconnected is address space with nothing behind it. Reads return zero and
// writes disappear.
type Unconnected struct{}

// Read implements the Chip interface.
func (un Unconnected) Read(address uint16) uint8 {
	return 0
}

// Write implements the Chip interface.
func (un Unconnected) Write(address uint16, data uint8) {
}

// NotFullyDecoded is an address range where more than one chip responds
// because the hardware does not decode the full address. Reads are the AND
// of every chip's response (the data bus is pulled low by any chip driving a
// zero) and writes are broadcast to every chip.
type NotFullyDecoded struct {
	chips []Chip
}

// NewNotFullyDecoded is the preferred method of initialisation for the
// NotFullyDecoded type.
func NewNotFullyDecoded(chips ...Chip) *NotFullyDecoded {
	return &NotFullyDecoded{chips: chips}
}

// Read implements the Chip interface.
func (nd *NotFullyDecoded) Read(address uint16) uint8 {
	value := uint8(0xff)
	for _, c := range nd.chips {
		value &= c.Read(address)
	}
	return value
}

// Write implements the Chip interface.
func (nd *NotFullyDecoded) Write(address uint16, data uint8) {
	for _, c := range nd.chips {
		c.Write(address, data)
	}
}
