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

package video

import (
	"sync/atomic"

	"github.com/jetsetilly/gophervec/hardware/video/phosphors"
)

// Frame is the unit of handoff to the renderer. Two frames alternate in a
// double buffer; the ready flag of each is set by the emulation goroutine
// and cleared by the renderer. The phosphor trail itself lives in the
// shared ring - the frame tells the renderer there are new dots to look at
// and which frame number they belong to.
type Frame struct {
	Phosphors *phosphors.Ring
	FrameNum  int

	ready int32
}

// publishFrame marks the active frame as ready and flips the double buffer.
// If the renderer never collected the previous frame its ready flag is
// simply reused; frames are dropped in preference to blocking.
func (vid *Video) publishFrame() {
	f := vid.frames[vid.activeFrame]
	f.FrameNum = vid.frameNum
	atomic.StoreInt32(&f.ready, 1)
	vid.activeFrame ^= 1
	atomic.StoreInt32(&vid.frames[vid.activeFrame].ready, 0)
}

// GetFrame returns the most recently completed frame, or nil if there isn't
// one ready. Non-blocking; intended to be called from the render goroutine.
// Collecting a frame clears its ready flag.
//
// At most one frame is ever in the ready state so both slots can be probed
// without reference to the activeFrame field, which belongs to the
// emulation goroutine.
func (vid *Video) GetFrame() *Frame {
	for _, f := range vid.frames {
		if atomic.CompareAndSwapInt32(&f.ready, 1, 0) {
			return f
		}
	}
	return nil
}
