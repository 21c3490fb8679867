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

import (
	"fmt"
	"strings"
)

// IRQLine is where the VIA sends changes of its interrupt output. The CPU's
// IRQ input satisfies this interface.
type IRQLine interface {
	SignalIRQ(active bool)
}

// CompareLine is the joystick comparator output. The VIA composites it into
// bit 5 of port B.
type CompareLine interface {
	Compare() bool
}

// the 16 registers of the 6522, selected by the low four address bits.
const (
	regORB = iota
	regORA
	regDDRB
	regDDRA
	regT1CounterLow
	regT1CounterHigh
	regT1LatchLow
	regT1LatchHigh
	regT2CounterLow
	regT2CounterHigh
	regSR
	regACR
	regPCR
	regIFR
	regIER
	regORANoHandshake
)

// bits of the interrupt flag and interrupt enable registers.
const (
	intCA2 = 0x01
	intCA1 = 0x02
	intSR  = 0x04
	intCB2 = 0x08
	intCB1 = 0x10
	intT2  = 0x20
	intT1  = 0x40
	intIRQ = 0x80
)

// CA2 and CB2 control modes (PCR bits 1-3 and 5-7).
const (
	inputNegativeEdge = iota
	inputNegativeEdgeIndependent
	inputPositiveEdge
	inputPositiveEdgeIndependent
	outputHandshake
	outputPulse
	outputManualLow
	outputManualHigh
)

// shift register modes (ACR bits 2-4).
const (
	shiftDisabled       = 0
	shiftOutFreeRunning = 4
)

// VIA is the 6522 chip. It satisfies the memory.Chip interface.
type VIA struct {
	irq      IRQLine
	joystick CompareLine

	// port B
	ORB       uint8
	IRB       uint8
	DDRB      uint8
	portBPins uint8

	// port A
	ORA       uint8
	IRA       uint8
	DDRA      uint8
	portAPins uint8

	// timer 1
	T1Counter uint16
	T1Latch   uint16
	t1Loaded  bool
	t1HasShot bool

	// the timer 1 PB7 output is completely independent of port B bit 7
	t1PB7 uint8

	// a write to the T1 high order counter in PB7 mode starts the PB7 pulse
	// at the end of the cycle, not immediately
	pb7DelayedPulseStart bool

	// timer 2. only the low byte of the latch is writable
	T2Counter uint16
	T2Latch   uint16
	t2Loaded  bool
	t2HasShot bool

	// shift register
	SR           uint8
	shiftClock   uint8
	shiftCounter int

	// did a shift register write happen in the current cycle
	srWrite bool

	// control registers and their decoded forms
	ACR uint8
	PCR uint8
	IFR uint8
	IER uint8

	timer1PB7Mode   bool
	timer1Free      bool
	timer2PulseMode bool
	srMode          int
	portALatch      bool
	portBLatch      bool

	shiftingOut        bool
	timer2Shift        bool
	systemClockShift   bool
	externalClockShift bool

	// positive edge select for the CA1/CB1 inputs (PCR bits 0 and 4)
	ca1EdgePos bool
	cb1EdgePos bool

	ca2Mode int
	cb2Mode int

	// peripheral control lines. 0 or 1
	ca1 uint8
	ca2 uint8
	cb1 uint8
	cb2 uint8

	// countdowns for the automatic one-cycle pulse in CA2/CB2 pulse output
	// mode
	ca2PulseCount int
	cb2PulseCount int
}

// NewVIA is the preferred method of initialisation for the VIA type. The
// irq handle is where interrupt line changes are sent; joystick supplies the
// COMPARE signal for port B bit 5. Either can be nil (useful in tests).
func NewVIA(irq IRQLine, joystick CompareLine) *VIA {
	return &VIA{
		irq:      irq,
		joystick: joystick,
	}
}

// Reset the VIA to its power-on state. External handles are retained.
func (via *VIA) Reset() {
	*via = VIA{
		irq:      via.irq,
		joystick: via.joystick,
	}
}

func (via *VIA) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("ACR=%#02x PCR=%#02x IFR=%#02x IER=%#02x\n", via.ACR, via.PCR, via.IFR, via.IER))
	s.WriteString(fmt.Sprintf("T1=%#04x (latch=%#04x) T2=%#04x (latch=%#02x)\n", via.T1Counter, via.T1Latch, via.T2Counter, via.T2Latch&0xff))
	s.WriteString(fmt.Sprintf("ORA=%#02x DDRA=%#02x pins=%#02x\n", via.ORA, via.DDRA, via.portAPins))
	s.WriteString(fmt.Sprintf("ORB=%#02x DDRB=%#02x pins=%#02x\n", via.ORB, via.DDRB, via.PortBPins()))
	s.WriteString(fmt.Sprintf("CA1=%d CA2=%d CB1=%d CB2=%d SR=%#02x", via.ca1, via.ca2, via.cb1, via.cb2, via.SR))
	return s.String()
}

// updateIFRTopBit recomputes bit 7 of the interrupt flag register and drives
// the CPU IRQ input. Bit 7 is set exactly when an interrupt is both flagged
// and enabled.
func (via *VIA) updateIFRTopBit() {
	if via.IFR&via.IER&0x7f == 0 {
		via.IFR &= 0x7f
		if via.irq != nil {
			via.irq.SignalIRQ(false)
		}
	} else {
		via.IFR |= intIRQ
		if via.irq != nil {
			via.irq.SignalIRQ(true)
		}
	}
}

// raiseInterrupt sets a bit in the interrupt flag register.
func (via *VIA) raiseInterrupt(flag uint8) {
	via.IFR |= flag
	via.updateIFRTopBit()
}

// clearInterrupt clears bits in the interrupt flag register.
func (via *VIA) clearInterrupt(flags uint8) {
	via.IFR &^= flags
	via.updateIFRTopBit()
}

// PortAPins returns the current state of the port A pins.
func (via *VIA) PortAPins() uint8 {
	return via.portAPins
}

// SetPortAPins attempts to set the port A pins. Pins configured as outputs
// by DDRA keep the value in ORA.
func (via *VIA) SetPortAPins(pins uint8) {
	via.portAPins = (pins &^ via.DDRA) | (via.ORA & via.DDRA)
}

// PortBPins returns the current state of the port B pins. The timer 1 PB7
// output replaces bit 7 when the timer is in PB7 mode and the joystick
// COMPARE signal is composited into bit 5.
func (via *VIA) PortBPins() uint8 {
	var compare uint8
	if via.joystick != nil && via.joystick.Compare() {
		compare = 0x20
	}
	if via.timer1PB7Mode {
		return (via.portBPins & 0x5f) | via.t1PB7 | compare
	}
	return (via.portBPins & 0xdf) | compare
}

// SetPortBPins attempts to set the port B pins. Pins configured as outputs
// by DDRB keep the value in ORB.
func (via *VIA) SetPortBPins(pins uint8) {
	via.portBPins = (pins &^ via.DDRB) | (via.ORB & via.DDRB)
}

// refresh pin state after a change to an output register or data direction
// register.
func (via *VIA) updatePortAPins() {
	via.SetPortAPins(via.portAPins)
}

func (via *VIA) updatePortBPins() {
	via.SetPortBPins(via.portBPins)
}

// CA2 returns the current level of the CA2 line. On the Vectrex this is the
// ~ZERO signal to the integrators.
func (via *VIA) CA2() uint8 {
	return via.ca2
}

// CB2 returns the current level of the CB2 line. On the Vectrex this is the
// ~BLANK signal to the vector hardware.
func (via *VIA) CB2() uint8 {
	return via.cb2
}

// SetCA1 drives the CA1 input. An active transition (sign selected by the
// PCR) flags the CA1 interrupt, latches port A when input latching is
// enabled, and releases CA2 when CA2 is in handshake output mode.
func (via *VIA) SetCA1(level uint8) {
	level &= 0x01
	if level == via.ca1 {
		return
	}
	via.ca1 = level

	if (level == 1) == via.ca1EdgePos {
		if via.portALatch {
			via.IRA = via.portAPins
		}
		if via.ca2Mode == outputHandshake {
			via.ca2 = 1
		}
		via.raiseInterrupt(intCA1)
	}
}

// SetCA2 drives the CA2 line when it is configured as an input. The call is
// ignored in the output modes.
func (via *VIA) SetCA2(level uint8) {
	level &= 0x01
	if via.ca2Mode >= outputHandshake || level == via.ca2 {
		return
	}
	via.ca2 = level

	pos := via.ca2Mode == inputPositiveEdge || via.ca2Mode == inputPositiveEdgeIndependent
	if (level == 1) == pos {
		via.raiseInterrupt(intCA2)
	}
}

// SetCB1 drives the CB1 input. Semantics are as SetCA1 but for port B. CB1
// is also the external shift clock when the shift register is in an
// external clock mode.
func (via *VIA) SetCB1(level uint8) {
	level &= 0x01
	if level == via.cb1 {
		return
	}
	via.cb1 = level

	if (level == 1) == via.cb1EdgePos {
		if via.portBLatch {
			via.IRB = via.portBPins
		}
		if via.cb2Mode == outputHandshake {
			via.cb2 = 1
		}
		via.raiseInterrupt(intCB1)
	}
}

// SetCB2 drives the CB2 line when it is configured as an input. The call is
// ignored in the output modes.
func (via *VIA) SetCB2(level uint8) {
	level &= 0x01
	if via.cb2Mode >= outputHandshake || level == via.cb2 {
		return
	}
	via.cb2 = level

	pos := via.cb2Mode == inputPositiveEdge || via.cb2Mode == inputPositiveEdgeIndependent
	if (level == 1) == pos {
		via.raiseInterrupt(intCB2)
	}
}
