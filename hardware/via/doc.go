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

// Package via implements the MOS 6522 Versatile Interface Adapter. The 6522
// is the heart of the Vectrex: its two timers pace the vector drawing, the
// shift register clocks the BLANK line for patterned lines, port A feeds the
// DAC and the sound chip, and port B carries the multiplexer select, the
// RAMP line and the sound chip's bus control signals.
//
// The chip is stepped once per machine cycle with EmulateCycle(). Register
// reads and writes happen through the memory.Chip interface; only the low
// four address bits select the register so the chip can be mapped across
// any size of address range.
//
// Timing follows the measured behaviour of the real part. Timer 1 raises
// its interrupt on the cycle where the counter starts at 0xffff, which
// works out at N+2 cycles after a write of N to the high order counter.
// Timer 2 raises its interrupt on the cycle where the counter equals zero.
package via
