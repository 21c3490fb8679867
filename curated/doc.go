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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. The formatting
// pattern used at creation doubles as the error's identity: the Is() function
// checks whether an error was created with a specific pattern and the Has()
// function checks whether the pattern occurs anywhere in the error chain.
//
// The Error() function implementation normalises the error chain.
// Specifically, the first part of the chain is dropped when it duplicates the
// second part; later parts are not compared.
package curated
