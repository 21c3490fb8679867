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

// Package phosphors models the persistence of the CRT. The electron gun
// leaves a trail of dots which stay visible for several frames while they
// fade. The trail is kept in a fixed size ring shared between the emulation
// goroutine, which appends dots, and the renderer, which reads them, fades
// them and retires them once dark.
//
// The ring is lock-free in the single-producer/single-consumer style. The
// producer owns the add index, the consumer owns the fade index; both are
// published with atomic stores and sampled with atomic loads. The live dots
// are those in the half-open ring range [fade, add). The consumer may
// additionally mutate the Z field of any live dot it is consuming; a dot's
// Z is single-writer at every stage of its life.
package phosphors

import (
	"sync/atomic"
)

// NumDots is the capacity of the ring. When the renderer cannot keep up the
// oldest dots are overwritten, which is what the phosphor on a real CRT
// does with its own history.
const NumDots = 50000

// the electron gun moves in a box of this size, in integrator units. dots
// are recorded at 1/64 of this resolution.
const (
	MaxGunX = 16384
	MaxGunY = 20480
)

// DotShift converts gun coordinates to dot coordinates.
const DotShift = 6

// Dot is a single point of brightness on the CRT.
type Dot struct {
	X int32
	Y int32

	// current brightness, 0 to 127. decremented by the renderer as the dot
	// fades
	Z uint8

	// brightness the dot was created with
	OrigZ uint8

	// IsStart marks the first dot of a stroke
	IsStart bool
}

// Ring is the phosphor trail.
type Ring struct {
	// Dots is indexed by the add and fade indices. only dots in the ring
	// range [fade, add) are meaningful
	Dots [NumDots]Dot

	add  int32
	fade int32

	// beam position in integrator units
	gunX int32
	gunY int32

	// whether the previous dot continued a stroke
	inLine bool
}

// NewRing is the preferred method of initialisation for the Ring type.
func NewRing() *Ring {
	return &Ring{}
}

// Add returns the producer index. Dots at indices [Fade(), Add()) are live.
func (rng *Ring) Add() int {
	return int(atomic.LoadInt32(&rng.add))
}

// Fade returns the consumer index.
func (rng *Ring) Fade() int {
	return int(atomic.LoadInt32(&rng.fade))
}

// Live returns the number of dots in the ring range [fade, add). It can
// never exceed NumDots-1.
func (rng *Ring) Live() int {
	n := rng.Add() - rng.Fade()
	if n < 0 {
		n += NumDots
	}
	return n
}

// GunX returns the horizontal beam position in integrator units.
func (rng *Ring) GunX() int32 {
	return rng.gunX
}

// GunY returns the vertical beam position in integrator units.
func (rng *Ring) GunY() int32 {
	return rng.gunY
}

// Move integrates the beam position by (dx, dy) and, if the beam is on and
// inside the screen box, records a dot of brightness z at the new position.
// A dot recorded immediately after the beam was off (or offscreen) starts a
// new stroke.
//
// Move is called by the emulation goroutine only.
func (rng *Ring) Move(dx int32, dy int32, z uint8, beamOn bool) {
	rng.gunX += dx
	rng.gunY += dy

	if !beamOn || rng.gunX < -MaxGunX || rng.gunX >= MaxGunX || rng.gunY < -MaxGunY || rng.gunY >= MaxGunY {
		rng.inLine = false
		return
	}

	rng.append(Dot{
		X:       rng.gunX >> DotShift,
		Y:       rng.gunY >> DotShift,
		Z:       z,
		OrigZ:   z,
		IsStart: !rng.inLine,
	})
	rng.inLine = true
}

func (rng *Ring) append(dot Dot) {
	add := atomic.LoadInt32(&rng.add)
	next := (add + 1) % NumDots

	// ring full: retire the oldest dot ourselves. the consumer may be
	// advancing fade concurrently, in which case the CAS fails and room has
	// been made anyway. fade only ever advances so this is safe from both
	// sides
	if fade := atomic.LoadInt32(&rng.fade); next == fade {
		atomic.CompareAndSwapInt32(&rng.fade, fade, (fade+1)%NumDots)
	}

	rng.Dots[add] = dot
	atomic.StoreInt32(&rng.add, next)
}

// Decay fades every live dot by half and retires leading dots that have
// gone dark, stopping at the first dot that is still visible. It implements
// the expected renderer behaviour, called once per displayed frame by the
// render goroutine.
func (rng *Ring) Decay() {
	add := atomic.LoadInt32(&rng.add)
	start := atomic.LoadInt32(&rng.fade)
	fade := start

	retiring := true
	for i := fade; i != add; i = (i + 1) % NumDots {
		rng.Dots[i].Z >>= 1
		if retiring {
			if rng.Dots[i].Z == 0 {
				fade = (i + 1) % NumDots
			} else {
				retiring = false
			}
		}
	}

	// the producer may have retired a dot itself since fade was loaded. the
	// new value is only published if it hasn't, so fade never moves backwards
	atomic.CompareAndSwapInt32(&rng.fade, start, fade)
}
