package ev3

import (
	"fmt"

	"github.com/ev3go/ev3dev"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// buttonMask maps contract keys onto the poller's button bits.
var buttonMask = map[brick.Key]ev3dev.Button{
	brick.KeyUp:     ev3dev.Up,
	brick.KeyDown:   ev3dev.Down,
	brick.KeyLeft:   ev3dev.Left,
	brick.KeyRight:  ev3dev.Right,
	brick.KeyCenter: ev3dev.Middle,
	brick.KeyBack:   ev3dev.Back,
}

// Buttons reads the brick keypad. The poller returns the instantaneous key
// bitmap rather than queued events, which suits periodic sampling.
type Buttons struct {
	poller ev3dev.ButtonPoller
}

// OpenButtons verifies the keypad event device is readable.
func OpenButtons() (*Buttons, error) {
	b := &Buttons{}
	if _, err := b.poller.Poll(); err != nil {
		return nil, fmt.Errorf("open buttons: %w", err)
	}
	return b, nil
}

func (b *Buttons) Pressed(k brick.Key) bool {
	state, err := b.poller.Poll()
	if err != nil {
		return false
	}
	return state&buttonMask[k] != 0
}
