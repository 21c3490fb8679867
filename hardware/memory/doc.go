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

// Package memory implements the Vectrex memory map. Every one of the 65536
// addresses dispatches to a memory mapped chip: the system ROM, the 1K RAM
// (shadowed twice), the VIA (shadowed 128 times), the cartridge ROM, an
// unconnected area, or the not-fully-decoded area where the RAM and the VIA
// both respond.
//
// Memory accesses never fail. Reads always return a byte and writes always
// succeed, possibly to nowhere.
package memory
