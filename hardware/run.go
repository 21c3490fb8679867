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

package hardware

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/gophervec/hardware/video"
)

// FrameHandler is called by the Runner with every completed frame. It runs
// on the emulation goroutine so it should hand the frame over quickly
// rather than render in place.
type FrameHandler func(*video.Frame)

// Runner drives a Machine in a loop suitable for a dedicated goroutine: the
// machine runs frame by frame, throttled to the 50Hz frame rate of the
// console unless warp speed is selected. The runner starts paused.
//
// Cancellation is cooperative. Stop() wakes a paused runner and the loop
// exits at the next frame boundary; no chip is ever suspended mid-cycle.
type Runner struct {
	mac     *Machine
	handler FrameHandler

	crit   sync.Mutex
	wake   *sync.Cond
	paused bool
	exit   bool

	warpSpeed int32

	// frame rate measurement
	framesLastSecond int32
}

// NewRunner is the preferred method of initialisation for the Runner type.
// The handler may be nil.
func NewRunner(mac *Machine, handler FrameHandler) *Runner {
	run := &Runner{
		mac:     mac,
		handler: handler,
		paused:  true,
	}
	run.wake = sync.NewCond(&run.crit)
	return run
}

// Run executes the machine until Stop() is called. Blocks; intended to be
// launched in its own goroutine with Resume() called when ready.
func (run *Runner) Run() {
	const frameDuration = time.Second / time.Duration(video.FrameRate)

	deadline := time.Now()
	secondStart := time.Now()
	framesThisSecond := 0

	for {
		run.crit.Lock()
		wasPaused := run.paused
		for run.paused && !run.exit {
			run.wake.Wait()
		}
		if run.exit {
			run.crit.Unlock()
			return
		}
		run.crit.Unlock()

		if wasPaused {
			// an unknown amount of time has passed while paused so all
			// timing is restarted
			deadline = time.Now()
			secondStart = time.Now()
			framesThisSecond = 0
		}

		warpSpeed := run.WarpSpeed()
		frame := run.mac.RunUntilFrame(warpSpeed)
		if run.handler != nil && frame != nil {
			run.handler(frame)
		}

		if warpSpeed {
			deadline = time.Now()
		} else {
			deadline = deadline.Add(frameDuration)
			if d := time.Until(deadline); d > 0 {
				time.Sleep(d)
			} else {
				// running behind; don't try to catch up
				deadline = time.Now()
			}
		}

		framesThisSecond++
		if time.Since(secondStart) >= time.Second {
			atomic.StoreInt32(&run.framesLastSecond, int32(framesThisSecond))
			framesThisSecond = 0
			secondStart = time.Now()
		}
	}
}

// Pause the runner at the next frame boundary.
func (run *Runner) Pause() {
	run.crit.Lock()
	defer run.crit.Unlock()
	run.paused = true
	run.mac.SetPaused(true)
}

// Resume a paused runner.
func (run *Runner) Resume() {
	run.crit.Lock()
	defer run.crit.Unlock()
	run.paused = false
	run.mac.SetPaused(false)
	run.wake.Signal()
}

// Stop the runner. The Run() function returns at the next frame boundary,
// or immediately if the runner is paused.
func (run *Runner) Stop() {
	run.crit.Lock()
	defer run.crit.Unlock()
	run.exit = true
	run.wake.Signal()
}

// SetWarpSpeed switches frame throttling and sound generation off (true)
// or on (false). Safe to call from any goroutine.
func (run *Runner) SetWarpSpeed(warp bool) {
	if warp == run.WarpSpeed() {
		return
	}
	if warp {
		atomic.StoreInt32(&run.warpSpeed, 1)
		run.mac.PSG.PauseSound()
	} else {
		atomic.StoreInt32(&run.warpSpeed, 0)
		run.mac.PSG.ResumeSound()
	}
}

// WarpSpeed returns whether the runner is at warp speed.
func (run *Runner) WarpSpeed() bool {
	return atomic.LoadInt32(&run.warpSpeed) == 1
}

// FramesLastSecond returns the number of frames completed in the most
// recently measured second.
func (run *Runner) FramesLastSecond() int {
	return int(atomic.LoadInt32(&run.framesLastSecond))
}
