package ev3

import (
	"fmt"

	"github.com/ev3go/ev3"
	"github.com/ev3go/ev3dev"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// LED drives the two bi-color status LEDs.
type LED struct {
	channels [2][2]*ev3dev.LED
}

// OpenLED verifies the status LEDs are present by blanking one channel.
func OpenLED() (*LED, error) {
	l := &LED{}
	l.channels[brick.LeftLED][brick.Red] = ev3.RedLeft
	l.channels[brick.LeftLED][brick.Green] = ev3.GreenLeft
	l.channels[brick.RightLED][brick.Red] = ev3.RedRight
	l.channels[brick.RightLED][brick.Green] = ev3.GreenRight
	if err := l.Set(brick.LeftLED, brick.Green, 0); err != nil {
		return nil, fmt.Errorf("open leds: %w", err)
	}
	return l, nil
}

func (l *LED) Set(side brick.Side, color brick.Color, intensity int) error {
	return l.channels[side][color].SetBrightness(intensity).Err()
}
