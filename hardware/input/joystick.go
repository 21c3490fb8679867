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

// Package input implements the Vectrex controller. The stick is analogue:
// the console reads the pot positions by sweeping the DAC and watching the
// COMPARE line, which tells it whether the selected pot is above or below
// the DAC output. The four buttons are read through the I/O port of the
// sound chip.
package input

// Key identifies a controller input for the KeyDown()/KeyUp() functions.
type Key int

// List of valid Key values.
const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyButton1
	KeyButton2
	KeyButton3
	KeyButton4
)

// axis values are 0 to 255 with 128 meaning centred.
const (
	axisMin    = 0
	axisCentre = 128
	axisMax    = 255
)

// the touchpad deflection required before a direction is considered to be
// held.
const touchPadThreshold = 0.3

// Joystick represents the player one controller.
type Joystick struct {
	// directional state. mirrors the analogue axes for convenience of
	// digital input sources
	Left  bool
	Right bool
	Up    bool
	Down  bool

	// analogue axes. 128 is centred
	XDirection uint8
	YDirection uint8

	// the four buttons, active low, in bits 0 to 3
	buttons uint8

	// result of the most recent pot/DAC comparison
	compare bool
}

// NewJoystick is the preferred method of initialisation for the Joystick
// type.
func NewJoystick() *Joystick {
	return &Joystick{
		XDirection: axisCentre,
		YDirection: axisCentre,
		buttons:    0x0f,
	}
}

// KeyDown translates a key press into controller state.
func (joy *Joystick) KeyDown(key Key) {
	switch key {
	case KeyLeft:
		joy.Left = true
		joy.XDirection = axisMin
	case KeyRight:
		joy.Right = true
		joy.XDirection = axisMax
	case KeyUp:
		joy.Up = true
		joy.YDirection = axisMax
	case KeyDown:
		joy.Down = true
		joy.YDirection = axisMin
	case KeyButton1, KeyButton2, KeyButton3, KeyButton4:
		joy.buttons &^= 1 << uint(key-KeyButton1)
	}
}

// KeyUp translates a key release into controller state.
func (joy *Joystick) KeyUp(key Key) {
	switch key {
	case KeyLeft:
		joy.Left = false
		joy.centreX()
	case KeyRight:
		joy.Right = false
		joy.centreX()
	case KeyUp:
		joy.Up = false
		joy.centreY()
	case KeyDown:
		joy.Down = false
		joy.centreY()
	case KeyButton1, KeyButton2, KeyButton3, KeyButton4:
		joy.buttons |= 1 << uint(key-KeyButton1)
	}
}

func (joy *Joystick) centreX() {
	switch {
	case joy.Left:
		joy.XDirection = axisMin
	case joy.Right:
		joy.XDirection = axisMax
	default:
		joy.XDirection = axisCentre
	}
}

func (joy *Joystick) centreY() {
	switch {
	case joy.Down:
		joy.YDirection = axisMin
	case joy.Up:
		joy.YDirection = axisMax
	default:
		joy.YDirection = axisCentre
	}
}

// TouchPad sets the analogue axes from a pair of normalised coordinates in
// the range -1.0 to 1.0. The directional booleans follow the axes once
// deflection passes a threshold.
func (joy *Joystick) TouchPad(x float32, y float32) {
	if x < -1.0 {
		x = -1.0
	} else if x > 1.0 {
		x = 1.0
	}
	if y < -1.0 {
		y = -1.0
	} else if y > 1.0 {
		y = 1.0
	}

	joy.XDirection = uint8(int(x*127) + axisCentre)
	joy.YDirection = uint8(int(y*127) + axisCentre)

	joy.Right = x > touchPadThreshold
	joy.Left = x < -touchPadThreshold
	joy.Up = y > touchPadThreshold
	joy.Down = y < -touchPadThreshold
}

// ProcessMux updates the COMPARE line for the multiplexer channel currently
// selected by the console. Channel 0 compares the X axis pot against the DAC
// output and channel 1 the Y axis pot. The dac argument is the signed DAC
// value (-128 to 127). Channels 2 and 3 leave COMPARE unchanged.
func (joy *Joystick) ProcessMux(channel int, dac int) {
	switch channel {
	case 0:
		joy.compare = int(joy.XDirection)-axisCentre > dac
	case 1:
		joy.compare = int(joy.YDirection)-axisCentre > dac
	}
}

// Compare returns the current state of the COMPARE line. The VIA composites
// this into bit 5 of port B.
func (joy *Joystick) Compare() bool {
	return joy.compare
}

// ButtonState returns the four buttons, active low, in bits 0 to 3. The
// upper nibble is always high. The PSG presents this value through its I/O
// register.
func (joy *Joystick) ButtonState() uint8 {
	return joy.buttons | 0xf0
}
