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

package phosphors_test

import (
	"testing"

	"github.com/jetsetilly/gophervec/hardware/video/phosphors"
	"github.com/jetsetilly/gophervec/test"
)

func TestMove(t *testing.T) {
	rng := phosphors.NewRing()

	// beam off: the gun moves but no dots are recorded
	rng.Move(640, -640, 100, false)
	test.Equate(t, rng.GunX(), int32(640))
	test.Equate(t, rng.GunY(), int32(-640))
	test.Equate(t, rng.Live(), 0)

	// beam on: a dot is recorded at the post-move position, starting a new
	// stroke
	rng.Move(64, 0, 100, true)
	test.Equate(t, rng.Live(), 1)
	dot := rng.Dots[rng.Fade()]
	test.Equate(t, dot.X, int32(704>>phosphors.DotShift))
	test.Equate(t, dot.Y, int32(-640>>phosphors.DotShift))
	test.Equate(t, dot.Z, 100)
	test.Equate(t, dot.OrigZ, 100)
	test.Equate(t, dot.IsStart, true)

	// the next dot continues the stroke
	rng.Move(64, 0, 100, true)
	test.Equate(t, rng.Live(), 2)
	test.Equate(t, rng.Dots[(rng.Fade()+1)%phosphors.NumDots].IsStart, false)

	// a blanked cycle breaks the stroke
	rng.Move(0, 0, 100, false)
	rng.Move(64, 0, 100, true)
	test.Equate(t, rng.Dots[(rng.Fade()+2)%phosphors.NumDots].IsStart, true)
}

func TestOffscreen(t *testing.T) {
	rng := phosphors.NewRing()

	// move the gun beyond the screen box; nothing is recorded even with
	// the beam on
	rng.Move(phosphors.MaxGunX, 0, 100, true)
	test.Equate(t, rng.Live(), 0)

	// returning onscreen starts a new stroke
	rng.Move(-phosphors.MaxGunX, 0, 100, true)
	test.Equate(t, rng.Live(), 1)
	test.Equate(t, rng.Dots[rng.Fade()].IsStart, true)
}

func TestDecay(t *testing.T) {
	rng := phosphors.NewRing()

	rng.Move(0, 0, 2, true)
	rng.Move(64, 0, 64, true)
	test.Equate(t, rng.Live(), 2)

	// each decay halves the brightness of every live dot
	rng.Decay()
	test.Equate(t, rng.Dots[rng.Fade()].Z, 1)
	test.Equate(t, rng.Live(), 2)

	// the leading dot goes dark and is retired; the second is still
	// visible so fading stops there
	rng.Decay()
	test.Equate(t, rng.Live(), 1)
	test.Equate(t, rng.Dots[rng.Fade()].Z, 16)

	for i := 0; i < 8; i++ {
		rng.Decay()
	}
	test.Equate(t, rng.Live(), 0)
}

func TestWraparound(t *testing.T) {
	rng := phosphors.NewRing()

	// fill the ring beyond capacity; the oldest dots are overwritten and
	// the live count never exceeds the capacity
	for i := 0; i < phosphors.NumDots+100; i++ {
		rng.Move(0, 0, 100, true)
		if rng.Live() >= phosphors.NumDots {
			t.Fatalf("live count reached ring capacity")
		}
	}
	test.Equate(t, rng.Live(), phosphors.NumDots-1)

	// add and fade indices remain in step after the wrap
	rng.Decay()
	test.Equate(t, rng.Live(), phosphors.NumDots-1)
}
