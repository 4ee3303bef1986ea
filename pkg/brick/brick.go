// Package brick defines the device contract for the EV3 brick: motors,
// sensors, the keypad, the status LEDs and the LCD. The control core in
// pkg/arm consumes only these interfaces; concrete implementations live in
// pkg/brick/ev3 (sysfs) and pkg/brick/sim (simulated).
package brick

// Command is a tacho-motor command name as understood by the motor driver.
type Command string

const (
	RunForever  Command = "run-forever"
	RunToAbsPos Command = "run-to-abs-pos"
	RunToRelPos Command = "run-to-rel-pos"
	RunTimed    Command = "run-timed"
	RunDirect   Command = "run-direct"
	StopMotor   Command = "stop"
	ResetMotor  Command = "reset"
)

// StopAction selects what the motor does when a command ends.
type StopAction string

const (
	Coast StopAction = "coast"
	Brake StopAction = "brake"
	Hold  StopAction = "hold"
)

// MotorState is the bitset reported by a motor's state attribute.
type MotorState int

const (
	Running MotorState = 1 << iota
	Ramping
	Holding
	Stalled
	Overloaded
)

// Motor is a single tacho motor. Position values are signed encoder units,
// approximately degrees. Duty cycles are signed percentages of full power.
type Motor interface {
	// Reset stops the motor, zeroes the encoder and clears all setpoints.
	Reset() error
	SetDutyCycle(pct int) error
	// SetSpeed sets the speed setpoint, in deg/s, used by positioned commands.
	SetSpeed(degPerSec int) error
	// SetTargetPosition sets the position setpoint consumed by
	// RunToAbsPos and RunToRelPos.
	SetTargetPosition(units int) error
	Command(cmd Command) error
	SetStopAction(action StopAction) error
	Position() (int, error)
	// SetPosition rewrites the current encoder value, establishing a new zero.
	SetPosition(units int) error
	State() (MotorState, error)
	// MaxSpeed reports the motor's rated maximum speed in deg/s.
	MaxSpeed() int
}

// Sensor is a single-value input device. Update refreshes the cached reading;
// Value returns the most recently refreshed one.
type Sensor interface {
	Update() error
	Value() int
	SetMode(mode string) error
}

// Key identifies one of the six brick keys.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyCenter
	KeyBack
)

// Buttons reports the instantaneous state of the brick keypad.
type Buttons interface {
	Pressed(k Key) bool
}

// Side selects one of the two status LEDs.
type Side int

const (
	LeftLED Side = iota
	RightLED
)

// Color selects one of the two channels of a bi-color LED.
type Color int

const (
	Red Color = iota
	Green
)

// LED drives the brick status LEDs. Intensity ranges 0..255.
type LED interface {
	Set(side Side, color Color, intensity int) error
}

// Display is the monochrome brick LCD.
type Display interface {
	Clear() error
	// Text draws s in the normal font with its top-left corner at (x, y).
	Text(x, y int, s string) error
	FillCircle(x, y, r int) error
	StrokeCircle(x, y, r int) error
	Size() (w, h int)
}
