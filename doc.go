// Package legoarm drives a three-axis LEGO EV3 robotic arm from the brick
// keypad: a rotating base, an elevation arm and a gripper claw, with
// software-enforced travel limits and automatic recovery to a safe position.
//
// # Usage
//
// On the brick (requires ev3dev):
//
//	legoarm run
//
// Without hardware, against a simulated arm in a terminal UI:
//
//	legoarm simulate
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/legoarm: CLI with run and simulate commands
//   - pkg/arm: the concurrent periodic control core
//   - pkg/brick: device contract consumed by the core
//   - pkg/brick/ev3: ev3dev sysfs implementation of the contract
//   - pkg/brick/sim: simulated brick for tests and the simulate command
package legoarm
