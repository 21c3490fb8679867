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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gophervec/logger"
	"github.com/jetsetilly/gophervec/test"
)

func TestCentral(t *testing.T) {
	logger.Clear()

	b := &strings.Builder{}
	test.ExpectedFailure(t, logger.Write(b))
	test.Equate(t, b.String(), "")

	logger.Log("test", "this is a test")
	test.ExpectedSuccess(t, logger.Write(b))
	test.Equate(t, b.String(), "test: this is a test\n")

	// duplicate entries are folded into a repeat count
	logger.Log("test", "this is a test")
	b.Reset()
	logger.Write(b)
	test.Equate(t, b.String(), "test: this is a test (repeat x2)\n")

	logger.Logf("test", "formatted %d", 10)
	b.Reset()
	logger.Tail(b, 1)
	test.Equate(t, b.String(), "test: formatted 10\n")

	logger.Clear()
	b.Reset()
	test.ExpectedFailure(t, logger.Write(b))
}
