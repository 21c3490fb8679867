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

// input latching enable bits in the ACR.
const (
	portAInputLatching = 0x01
	portBInputLatching = 0x02
)

// triggers the CA2 side effects of an ORA access: handshake pulls the line
// low until the next active CA1 transition; pulse mode schedules a one
// cycle low pulse.
func (via *VIA) ca2PortAAccess() {
	switch via.ca2Mode {
	case outputHandshake:
		via.ca2 = 0
	case outputPulse:
		via.ca2PulseCount = 2
	}
}

// triggers the CB2 side effects of an ORB write. unlike CA2 there is no
// side effect on read.
func (via *VIA) cb2PortBWrite() {
	switch via.cb2Mode {
	case outputHandshake:
		via.cb2 = 0
	case outputPulse:
		via.cb2PulseCount = 2
	}
}

// Write a value to one of the 16 VIA registers. Implements the memory.Chip
// interface; only the low four address bits are significant.
func (via *VIA) Write(address uint16, value uint8) {
	switch address & 0x000f {
	case regORB:
		via.ORB = value
		via.updatePortBPins()
		via.cb2PortBWrite()
		via.clearInterrupt(intCB1 | intCB2)

	case regORA:
		via.ca2PortAAccess()
		via.ORA = value
		via.updatePortAPins()
		via.clearInterrupt(intCA1 | intCA2)

	case regDDRB:
		via.DDRB = value
		via.updatePortBPins()

	case regDDRA:
		via.DDRA = value
		via.updatePortAPins()

	case regT1CounterLow:
		// a write to the counter low order byte actually sets the latch
		via.T1Latch = (via.T1Latch & 0xff00) | uint16(value)

	case regT1CounterHigh:
		via.T1Latch = (via.T1Latch & 0x00ff) | (uint16(value) << 8)
		via.T1Counter = via.T1Latch
		via.t1Loaded = true
		via.t1HasShot = false
		via.clearInterrupt(intT1)
		if via.timer1PB7Mode {
			// PB7 goes low at the end of the cycle, not immediately
			via.pb7DelayedPulseStart = true
		}

	case regT1LatchLow:
		via.T1Latch = (via.T1Latch & 0xff00) | uint16(value)

	case regT1LatchHigh:
		via.T1Latch = (via.T1Latch & 0x00ff) | (uint16(value) << 8)
		via.clearInterrupt(intT1)

	case regT2CounterLow:
		via.T2Latch = uint16(value)

	case regT2CounterHigh:
		via.T2Counter = via.T2Latch | (uint16(value) << 8)
		via.t2Loaded = true
		via.t2HasShot = false
		via.clearInterrupt(intT2)

	case regSR:
		via.SR = value
		via.srWrite = true
		if via.IFR&intSR != 0 {
			via.shiftCounter = 0
			via.shiftClock = 0
			via.clearInterrupt(intSR)
		}

	case regACR:
		via.ACR = value
		via.timer1PB7Mode = value&0x80 != 0
		via.timer1Free = value&0x40 != 0
		via.timer2PulseMode = value&0x20 != 0
		via.srMode = int(value&0x1c) >> 2
		via.portBLatch = value&portBInputLatching != 0
		via.portALatch = value&portAInputLatching != 0
		via.externalClockShift = via.srMode&0x03 == 0x03
		via.systemClockShift = via.srMode&0x03 == 0x02
		via.timer2Shift = via.srMode&0x03 <= 0x01 && via.srMode != shiftDisabled
		via.shiftingOut = via.srMode&0x04 != 0

	case regPCR:
		via.PCR = value
		via.ca1EdgePos = value&0x01 != 0
		via.ca2Mode = int(value&0x0e) >> 1
		via.cb1EdgePos = value&0x10 != 0
		via.cb2Mode = int(value&0xe0) >> 5
		if via.ca2Mode == outputManualLow {
			via.ca2 = 0
		} else if via.ca2Mode == outputManualHigh {
			via.ca2 = 1
		}
		if via.cb2Mode == outputManualLow {
			via.cb2 = 0
		} else if via.cb2Mode == outputManualHigh {
			via.cb2 = 1
		}

	case regIFR:
		// the top bit cannot be cleared directly
		via.clearInterrupt(value & 0x7f)

	case regIER:
		if value&0x80 == 0 {
			via.IER &^= value
		} else {
			via.IER |= value
		}
		via.IER &= 0x7f
		via.updateIFRTopBit()

	case regORANoHandshake:
		via.ORA = value
		via.updatePortAPins()
	}
}

// Read a value from one of the 16 VIA registers. Implements the memory.Chip
// interface; only the low four address bits are significant.
func (via *VIA) Read(address uint16) uint8 {
	var value uint8

	switch address & 0x000f {
	case regORB:
		if via.portBLatch {
			// with latching enabled, input pins read the value latched into
			// IRB at the last active CB1 transition
			value = via.IRB &^ via.DDRB
		} else {
			value = via.PortBPins() &^ via.DDRB
		}
		// pins set as outputs always read back the output register
		value |= via.ORB & via.DDRB
		via.clearInterrupt(intCB1 | intCB2)

	case regORA:
		via.ca2PortAAccess()
		if via.portALatch {
			value = via.IRA
		} else {
			// with latching disabled a read returns the pin state regardless
			// of data direction
			value = via.portAPins
		}
		via.clearInterrupt(intCA1 | intCA2)

	case regDDRB:
		value = via.DDRB

	case regDDRA:
		value = via.DDRA

	case regT1CounterLow:
		value = uint8(via.T1Counter & 0xff)
		via.clearInterrupt(intT1)

	case regT1CounterHigh:
		value = uint8(via.T1Counter >> 8)

	case regT1LatchLow:
		value = uint8(via.T1Latch & 0xff)

	case regT1LatchHigh:
		value = uint8(via.T1Latch >> 8)

	case regT2CounterLow:
		value = uint8(via.T2Counter & 0xff)
		via.clearInterrupt(intT2)

	case regT2CounterHigh:
		value = uint8(via.T2Counter >> 8)

	case regSR:
		value = via.SR
		if via.IFR&intSR != 0 {
			via.shiftCounter = 0
			via.clearInterrupt(intSR)
		}

	case regACR:
		value = via.ACR

	case regPCR:
		value = via.PCR

	case regIFR:
		via.updateIFRTopBit()
		value = via.IFR

	case regIER:
		value = via.IER&0x7f | 0x80

	case regORANoHandshake:
		if via.portALatch {
			value = via.IRA
		} else {
			value = via.portAPins
		}
	}

	return value
}
