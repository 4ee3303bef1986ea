package ev3

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/ev3go/ev3dev"
)

// Sensor is a LEGO sensor on one of the input ports. Update refreshes the
// cached value0 reading; Value returns the cache without touching sysfs.
type Sensor struct {
	dev *ev3dev.Sensor

	mu  sync.Mutex
	val int
}

// OpenSensor locates the sensor with the given driver on the given input
// port ("in1" ...).
func OpenSensor(port, driver string) (*Sensor, error) {
	dev, err := ev3dev.SensorFor(portAddress(port), driver)
	if err != nil {
		return nil, fmt.Errorf("open sensor %s: %w", port, err)
	}
	return &Sensor{dev: dev}, nil
}

func (s *Sensor) Update() error {
	raw, err := s.dev.Value(0)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse sensor value: %w", err)
	}
	s.mu.Lock()
	s.val = v
	s.mu.Unlock()
	return nil
}

func (s *Sensor) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

func (s *Sensor) SetMode(mode string) error {
	return s.dev.SetMode(mode).Err()
}
