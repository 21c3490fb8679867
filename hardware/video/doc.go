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

// Package video emulates the analogue vector drawing circuitry of the
// Vectrex: the DAC on VIA port A, the four channel multiplexer, the X/Y
// integrators, the Z sample and hold and the RAMP/ZERO/BLANK control lines.
// Beam movement is integrated every machine cycle and, while the beam is
// on, dots are recorded in the phosphor ring for the renderer to draw and
// fade.
//
// GetFrame() is the renderer's entry point: a non-blocking try-consume of
// the most recently completed 50Hz frame.
package video
