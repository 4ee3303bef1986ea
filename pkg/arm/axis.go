package arm

import (
	"fmt"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// axisAction is the per-tick drive request for one axis, after the shared
// Intent has been mapped onto the axis's own directions.
type axisAction int

const (
	axisStop axisAction = iota
	axisForward
	axisBackward
)

// axis is the state machine shared by the rotation and elevation
// controllers. Forward is the direction guarded by the axis's sensor
// (clockwise for rotation, up for elevation); backward ends at a soft limit
// enforced against the encoder. Only this axis ever commands its motor.
type axis struct {
	name           string
	motor          brick.Motor
	limit          *Flag // sensor limit; set by a sampler, cleared here
	correction     *Flag
	closed         *Flag
	intent         func() axisAction
	overSoftLimit  func(pos int) bool
	forwardDuty    int
	backwardDuty   int
	recoveryOffset int

	current axisAction
}

// tick runs one period of the axis state machine. Sensor-limit recovery
// takes precedence over soft-limit recovery; during either, the tick's
// intent is observed but not applied.
func (a *axis) tick() error {
	next := a.intent()

	if a.limit.IsSet() {
		a.correction.Set()
		if err := a.recover(brick.RunToRelPos, a.recoveryOffset); err != nil {
			return fmt.Errorf("%s: limit recovery: %w", a.name, err)
		}
		a.limit.Clear()
		a.correction.Clear()
		return nil
	}

	pos, err := a.motor.Position()
	if err != nil {
		return fmt.Errorf("%s: read position: %w", a.name, err)
	}
	if a.overSoftLimit(pos) {
		a.correction.Set()
		if err := a.recover(brick.RunToAbsPos, 0); err != nil {
			return fmt.Errorf("%s: soft-limit recovery: %w", a.name, err)
		}
		a.correction.Clear()
		return nil
	}

	if next != a.current {
		if err := a.motor.SetDutyCycle(a.duty(next)); err != nil {
			return fmt.Errorf("%s: set duty cycle: %w", a.name, err)
		}
		a.current = next
	}
	return nil
}

// recover issues a positioned move, waits for it to finish, cuts power and
// marks the axis stopped. If the close flag was raised while waiting, no
// further commands are sent.
func (a *axis) recover(cmd brick.Command, units int) error {
	if err := a.motor.SetTargetPosition(units); err != nil {
		return err
	}
	if err := a.motor.Command(cmd); err != nil {
		return err
	}
	if err := awaitMotionEnd(a.motor, a.closed); err != nil {
		return err
	}
	a.current = axisStop
	if a.closed.IsSet() {
		return nil
	}
	return cutPower(a.motor)
}

func (a *axis) duty(action axisAction) int {
	switch action {
	case axisForward:
		return a.forwardDuty
	case axisBackward:
		return a.backwardDuty
	default:
		return 0
	}
}
