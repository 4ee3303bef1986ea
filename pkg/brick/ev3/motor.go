package ev3

import (
	"fmt"

	"github.com/ev3go/ev3dev"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// stateBits pairs the ev3dev motor state flags with the contract's bitset.
// Running|Stalled (9) is the stall signature the claw calibration waits for.
var stateBits = []struct {
	dev ev3dev.MotorState
	out brick.MotorState
}{
	{ev3dev.Running, brick.Running},
	{ev3dev.Ramping, brick.Ramping},
	{ev3dev.Holding, brick.Holding},
	{ev3dev.Stalled, brick.Stalled},
	{ev3dev.Overloaded, brick.Overloaded},
}

// Motor is a tacho motor on one of the output ports.
type Motor struct {
	dev *ev3dev.TachoMotor
}

// OpenMotor locates the motor with the given driver on the given output port
// ("outA" ...) and resets it to a known state.
func OpenMotor(port, driver string) (*Motor, error) {
	dev, err := ev3dev.TachoMotorFor(portAddress(port), driver)
	if err != nil {
		return nil, fmt.Errorf("open motor %s: %w", port, err)
	}
	m := &Motor{dev: dev}
	if err := m.Reset(); err != nil {
		return nil, fmt.Errorf("open motor %s: %w", port, err)
	}
	return m, nil
}

func (m *Motor) Reset() error {
	return m.dev.Command(string(brick.ResetMotor)).Err()
}

func (m *Motor) SetDutyCycle(pct int) error {
	return m.dev.SetDutyCycleSetpoint(pct).Err()
}

func (m *Motor) SetSpeed(degPerSec int) error {
	return m.dev.SetSpeedSetpoint(degPerSec).Err()
}

func (m *Motor) SetTargetPosition(units int) error {
	return m.dev.SetPositionSetpoint(units).Err()
}

func (m *Motor) Command(cmd brick.Command) error {
	return m.dev.Command(string(cmd)).Err()
}

func (m *Motor) SetStopAction(action brick.StopAction) error {
	return m.dev.SetStopAction(string(action)).Err()
}

func (m *Motor) Position() (int, error) {
	return m.dev.Position()
}

func (m *Motor) SetPosition(units int) error {
	return m.dev.SetPosition(units).Err()
}

func (m *Motor) State() (brick.MotorState, error) {
	st, err := m.dev.State()
	if err != nil {
		return 0, err
	}
	return stateFromDev(st), nil
}

func (m *Motor) MaxSpeed() int { return m.dev.MaxSpeed() }

func stateFromDev(st ev3dev.MotorState) brick.MotorState {
	var out brick.MotorState
	for _, b := range stateBits {
		if st&b.dev != 0 {
			out |= b.out
		}
	}
	return out
}
