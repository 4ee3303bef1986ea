// Package ev3 adapts the brick device contract to EV3 hardware through the
// ev3go bindings: tacho motors, sensors and the status LEDs over the ev3dev
// sysfs tree, the keypad through the brick button poller and the LCD through
// its framebuffer.
package ev3

// Driver names ev3dev reports for the devices of the arm.
const (
	LargeMotorDriver  = "lego-ev3-l-motor"
	MediumMotorDriver = "lego-ev3-m-motor"
	ColorSensorDriver = "lego-ev3-color"
	TouchSensorDriver = "lego-ev3-touch"
)

// portAddress translates a short port name ("outA", "in1") into the address
// reported by the ev3dev port driver.
func portAddress(port string) string {
	return "ev3-ports:" + port
}
