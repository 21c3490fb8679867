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

package via

// EmulateCycle ticks the VIA forward one machine cycle: the timers advance,
// the shift register shifts on shift-clock edges, the CA2/CB2 pulse outputs
// decay and the deferred PB7 pulse start is applied.
//
// Writes performed by the CPU earlier in the same cycle are visible to the
// chip here; the t1Loaded/t2Loaded flags stop a counter that was loaded
// this cycle from also decrementing this cycle.
func (via *VIA) EmulateCycle() {
	prevShiftClock := via.shiftClock

	// the shift clock is gated off when the shift register is disabled,
	// when the SR interrupt flag is set (shifting pauses until the CPU
	// services it), and when the shift register was written this cycle
	shiftClockEnabled := via.srMode != shiftDisabled && via.IFR&intSR == 0 && !via.srWrite

	// timer 1. note that if the latch is set to N during cycle T0 then the
	// counter reads N at T1 and the interrupt occurs at T(N+2), the cycle
	// on which the counter starts at 0xffff
	if via.t1Loaded {
		via.t1Loaded = false
	} else if via.T1Counter == 0xffff {
		if via.timer1Free {
			// free-running: reload from the latch and raise the interrupt
			// every time
			via.T1Counter = via.T1Latch
			via.raiseInterrupt(intT1)
			via.t1HasShot = true
			if via.timer1PB7Mode {
				via.t1PB7 ^= 0x80
			}
		} else {
			// one-shot: raise the interrupt at most once per load
			if !via.t1HasShot {
				via.raiseInterrupt(intT1)
				via.t1HasShot = true
				if via.timer1PB7Mode {
					via.t1PB7 |= 0x80
				}
			}
			// the counter continues to count down from 0xffff
			via.T1Counter = 0xfffe
		}
	} else {
		via.T1Counter--
	}

	// timer 2. unlike timer 1 the interrupt occurs on the cycle where the
	// counter equals zero, not 0xffff
	if via.t2Loaded {
		via.t2Loaded = false
	} else if via.timer2PulseMode {
		// pulse counting mode: the counter is held. PB6 pulses are not
		// counted
	} else if via.T2Counter == 0x0000 {
		if !via.t2HasShot {
			via.raiseInterrupt(intT2)
			via.t2HasShot = true
		}

		if via.timer2Shift {
			// timer 2 is in control of the shift register: reload the low
			// byte of the counter from the latch and toggle the shift clock
			via.T2Counter = (via.T2Latch & 0x00ff) | (via.T2Counter & 0xff00)
			if shiftClockEnabled {
				via.shiftClock ^= 0x01
				via.cb1 = via.shiftClock
			}
		} else {
			via.T2Counter = 0xffff
		}
	} else {
		via.T2Counter--
	}

	if shiftClockEnabled {
		// for the timer 2 modes the clock has already been toggled in the
		// timer 2 update above
		if via.systemClockShift {
			via.shiftClock ^= 0x01
			via.cb1 = via.shiftClock
		} else if via.externalClockShift {
			via.shiftClock = via.cb1
		}

		// shifting happens when the shift clock has gone low
		if via.shiftClock == 0 && via.shiftClock != prevShiftClock {
			if via.shiftingOut {
				via.cb2 = (via.SR & 0x80) >> 7
			}

			// CB2 rotates into the lowest bit. this also happens when
			// shifting out
			via.SR = (via.SR << 1) | via.cb2

			via.shiftCounter = (via.shiftCounter + 1) % 8
			if via.shiftCounter == 0 && via.srMode != shiftOutFreeRunning {
				via.raiseInterrupt(intSR)
			}
		}
	}

	// automatic one-cycle pulses on CA2/CB2
	if via.ca2Mode == outputPulse && via.ca2PulseCount > 0 {
		via.ca2PulseCount--
		if via.ca2PulseCount > 0 {
			via.ca2 = 0
		} else {
			via.ca2 = 1
		}
	}
	if via.cb2Mode == outputPulse && via.cb2PulseCount > 0 {
		via.cb2PulseCount--
		if via.cb2PulseCount > 0 {
			via.cb2 = 0
		} else {
			via.cb2 = 1
		}
	}

	// a write to the timer 1 high order counter in PB7 mode starts the PB7
	// pulse at the end of the cycle
	if via.pb7DelayedPulseStart {
		via.t1PB7 = 0
		via.pb7DelayedPulseStart = false
	}

	via.srWrite = false
}
