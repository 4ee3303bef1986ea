package arm

import "time"

// Drive powers, in signed duty-cycle percent.
const (
	rotationPower      = 30
	elevationUpPower   = -30
	elevationDownPower = 20
	clawPower          = 40
)

// Speeds for positioned moves, in percent of each motor's rated max speed.
const (
	stepRotationSpeed  = 40
	stepElevationSpeed = 20
	stepClawSpeed      = 40
)

// Relative offsets that back each motor away from its limit and, during
// calibration, establish the zero position.
const (
	rotationInitUnits  = -350
	elevationInitUnits = 100
	clawInitUnits      = 90
)

// Soft limits: end-of-travel positions enforced in software on the side that
// has no sensor.
const (
	topBottomPos = 200
	topLeftPos   = -400
)

// reflectionLimit is the reflected-light reading at which the arm is
// considered to have reached the top of its travel.
const reflectionLimit = 30

// touchActive is the touch sensor value while the switch is closed.
const touchActive = 1

// Activity periods.
const (
	buttonPeriod   = 180 * time.Millisecond
	colorPeriod    = 200 * time.Millisecond
	touchPeriod    = 200 * time.Millisecond
	motorPeriod    = 90 * time.Millisecond
	ledPeriod      = 40 * time.Millisecond
	reporterPeriod = 500 * time.Millisecond
)

// Waits inside recovery and parking moves: settleTime lets the motor driver
// register a freshly issued command before its state is polled; pollTime is
// the polling period while waiting for Running to clear.
const (
	settleTime = 2 * time.Millisecond
	pollTime   = time.Millisecond
)

// clawCloseTime bounds the grip: power is cut after this long regardless of
// how far the claw travelled, so the grip adapts to the object's size.
const clawCloseTime = 500 * time.Millisecond

// LCD layout.
const (
	titleText    = "LEGO - ROBOTIC ARM"
	titleX       = 20
	titleY       = 10
	circleRadius = 35
	timeX        = 60
	timeYOffset  = 20
)

// Activity priority deltas below the platform's maximum real-time priority.
const (
	prioButtons  = 5
	prioColor    = 10
	prioTouch    = 15
	prioMotors   = 20
	prioClaw     = 25
	prioLEDs     = 30
	prioReporter = 35

	prioCalElevation = 5
	prioCalRotation  = 10
	prioCalClaw      = 15
)
