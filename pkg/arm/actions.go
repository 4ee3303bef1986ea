package arm

// RotationAction is the requested motion of the base motor.
type RotationAction int

const (
	RotateStop RotationAction = iota
	RotateLeft
	RotateRight
)

// ElevationAction is the requested motion of the arm motor.
type ElevationAction int

const (
	ElevateStop ElevationAction = iota
	Rise
	Lower
)

// ClawAction is the requested state of the gripper toggle. Active is consumed
// by the claw controller, which resets it to Inactive after acting on it.
type ClawAction int

const (
	ClawInactive ClawAction = iota
	ClawActive
)
