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

// Package psg emulates the AY-3-8912 Programmable Sound Generator: three
// square wave tone channels, a noise generator, an envelope generator and a
// mixer. The sample integration method derives from Richard Wilson's JEMU
// emulator, whose author kindly permits reuse of his code in other
// projects.
//
// The 8912 has no bus of its own in the Vectrex. Register addresses and
// data arrive over VIA port A, with port B bits 3 (BC1) and 4 (BDIR)
// steering the latched-address protocol. The chip's single I/O port,
// register 14, is wired to the controller buttons.
//
// Output is mono 16-bit PCM at 22050Hz, delivered to a SampleSink in fixed
// size blocks. A nil sink puts the chip in silent mode: emulation continues
// but no samples are submitted.
package psg
