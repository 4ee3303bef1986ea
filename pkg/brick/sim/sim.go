// Package sim provides an in-memory brick used by the unit tests and by the
// simulate command. Motors integrate duty cycle over wall time in run-direct
// mode and travel for a fixed duration on positioned commands; sensors and
// keys are settable from the outside.
package sim

import (
	"sync"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// Brick bundles one simulated device per slot of the real arm.
type Brick struct {
	Rotation  *Motor
	Elevation *Motor
	Claw      *Motor
	Color     *Sensor
	Touch     *Sensor
	Keys      *Buttons
	LEDs      *LED
	LCD       *Display
}

// New returns a brick with all devices in their power-on state.
func New() *Brick {
	return &Brick{
		Rotation:  NewMotor(900),
		Elevation: NewMotor(900),
		Claw:      NewMotor(1200),
		Color:     &Sensor{},
		Touch:     &Sensor{},
		Keys:      NewButtons(),
		LEDs:      &LED{},
		LCD:       NewDisplay(178, 128),
	}
}

// Working-frame geometry of the wired plant: the touch switch closes this
// many encoder units clockwise of the rotation zero, the reflective marker
// trips this far above the elevation zero, and the claw jaws meet this far
// below fully open.
const (
	TouchSwitchPos    = 350
	TopMarkerPos      = -100
	ClawClosedPos     = -90
	plantTravel       = 250 * time.Millisecond
	reflectionBright  = 100
	reflectionAmbient = 3
)

// WireArm couples sensors and motors the way the physical arm does: the
// touch switch closes at the clockwise end of rotation travel, the color
// sensor sees the reflective marker at the top of elevation travel, and the
// claw stalls once its jaws meet. Positioned moves are slowed down to a
// human-visible duration.
func (b *Brick) WireArm() {
	b.Touch.SetSource(func() int {
		if pos, _ := b.Rotation.Position(); pos >= TouchSwitchPos {
			return 1
		}
		return 0
	})
	b.Color.SetSource(func() int {
		if pos, _ := b.Elevation.Position(); pos <= TopMarkerPos {
			return reflectionBright
		}
		return reflectionAmbient
	})
	b.Claw.StallBelow(ClawClosedPos)
	b.Rotation.SetTravelTime(plantTravel)
	b.Elevation.SetTravelTime(plantTravel)
	b.Claw.SetTravelTime(plantTravel)
}

// Record is one motor operation, kept for test assertions.
type Record struct {
	Op  string
	Arg int
}

// Motor simulates a tacho motor.
type Motor struct {
	mu         sync.Mutex
	maxSpeed   int
	pos        float64
	duty       int
	speedSP    int
	targetSP   int
	direct     bool
	lastTick   time.Time
	moving     bool
	moveEnd    time.Time
	moveTarget float64
	stallAt    *int
	travel     time.Duration
	rate       float64 // encoder units per second per duty percent
	err        error
	records    []Record
}

// NewMotor returns a motor with the given rated max speed in deg/s.
func NewMotor(maxSpeed int) *Motor {
	return &Motor{
		maxSpeed: maxSpeed,
		travel:   10 * time.Millisecond,
		rate:     5,
		lastTick: time.Now(),
	}
}

// SetTravelTime sets how long positioned commands report Running.
func (m *Motor) SetTravelTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.travel = d
}

// StallBelow makes run-direct with negative duty stall once the position
// reaches floor, reporting Running|Stalled. Used for claw calibration.
func (m *Motor) StallBelow(floor int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := floor
	m.stallAt = &f
}

// SetError makes every subsequent operation fail with err.
func (m *Motor) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// advance settles finished moves and integrates run-direct motion.
// Callers must hold m.mu.
func (m *Motor) advance() {
	now := time.Now()
	if m.moving && !now.Before(m.moveEnd) {
		m.pos = m.moveTarget
		m.moving = false
	}
	if m.direct && m.duty != 0 {
		dt := now.Sub(m.lastTick).Seconds()
		m.pos += float64(m.duty) * m.rate * dt
		if m.stallAt != nil && m.duty < 0 && m.pos < float64(*m.stallAt) {
			m.pos = float64(*m.stallAt)
		}
	}
	m.lastTick = now
}

func (m *Motor) record(op string, arg int) {
	m.records = append(m.records, Record{Op: op, Arg: arg})
}

// Records returns a copy of all operations issued so far.
func (m *Motor) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

func (m *Motor) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.record("reset", 0)
	m.pos, m.duty, m.speedSP, m.targetSP = 0, 0, 0, 0
	m.direct, m.moving = false, false
	return nil
}

func (m *Motor) SetDutyCycle(pct int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.advance()
	m.record("set_duty_cycle", pct)
	m.duty = pct
	return nil
}

func (m *Motor) SetSpeed(degPerSec int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.record("set_speed", degPerSec)
	m.speedSP = degPerSec
	return nil
}

func (m *Motor) SetTargetPosition(units int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.record("set_target", units)
	m.targetSP = units
	return nil
}

func (m *Motor) Command(cmd brick.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.advance()
	m.record("command:"+string(cmd), 0)
	switch cmd {
	case brick.RunDirect:
		m.direct = true
		m.moving = false
	case brick.RunToAbsPos:
		m.direct = false
		m.moving = true
		m.moveTarget = float64(m.targetSP)
		m.moveEnd = time.Now().Add(m.travel)
	case brick.RunToRelPos:
		m.direct = false
		m.moving = true
		m.moveTarget = m.pos + float64(m.targetSP)
		m.moveEnd = time.Now().Add(m.travel)
	case brick.StopMotor:
		m.direct = false
		m.moving = false
		m.duty = 0
	case brick.ResetMotor:
		m.pos, m.duty = 0, 0
		m.direct, m.moving = false, false
	}
	return nil
}

func (m *Motor) SetStopAction(action brick.StopAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.record("set_stop_action", 0)
	return nil
}

func (m *Motor) Position() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.advance()
	return int(m.pos), nil
}

func (m *Motor) SetPosition(units int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.advance()
	m.pos = float64(units)
	return nil
}

func (m *Motor) State() (brick.MotorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.advance()
	var s brick.MotorState
	if m.moving {
		s |= brick.Running
	}
	if m.direct && m.duty != 0 {
		s |= brick.Running
		if m.stallAt != nil && m.duty < 0 && int(m.pos) <= *m.stallAt {
			s |= brick.Stalled
		}
	}
	return s, nil
}

func (m *Motor) MaxSpeed() int { return m.maxSpeed }

// Sensor simulates a single-value sensor. Its reading comes from, in
// descending precedence: a pending Pulse, an attached source function, or
// the last Set value.
type Sensor struct {
	mu         sync.Mutex
	val        int
	reading    int
	mode       string
	err        error
	source     func() int
	pulseVal   int
	pulseUntil time.Time
}

// Set changes the value the next Update will observe.
func (s *Sensor) Set(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = v
}

// SetSource couples the sensor to a derived reading, typically a function of
// a motor position, modelling the physical linkage between arm and sensor.
func (s *Sensor) SetSource(fn func() int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = fn
}

// Pulse overrides the reading with v for duration d.
func (s *Sensor) Pulse(v int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pulseVal = v
	s.pulseUntil = time.Now().Add(d)
}

// SetError makes every subsequent Update fail with err.
func (s *Sensor) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Sensor) Update() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	switch {
	case time.Now().Before(s.pulseUntil):
		s.reading = s.pulseVal
	case s.source != nil:
		s.reading = s.source()
	default:
		s.reading = s.val
	}
	return nil
}

func (s *Sensor) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reading
}

func (s *Sensor) SetMode(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.mode = mode
	return nil
}

// Buttons simulates the brick keypad. Presses may be held indefinitely or
// expire after a duration, which suits one-shot terminal key events.
type Buttons struct {
	mu    sync.Mutex
	held  map[brick.Key]bool
	until map[brick.Key]time.Time
}

func NewButtons() *Buttons {
	return &Buttons{
		held:  make(map[brick.Key]bool),
		until: make(map[brick.Key]time.Time),
	}
}

// Hold presses k until Release.
func (b *Buttons) Hold(k brick.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.held[k] = true
}

func (b *Buttons) Release(k brick.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.held[k] = false
	delete(b.until, k)
}

// Press presses k for duration d.
func (b *Buttons) Press(k brick.Key, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.until[k] = time.Now().Add(d)
}

func (b *Buttons) Pressed(k brick.Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.held[k] {
		return true
	}
	if t, ok := b.until[k]; ok && time.Now().Before(t) {
		return true
	}
	return false
}

// LED records the last intensity written to each channel.
type LED struct {
	mu     sync.Mutex
	levels [2][2]int
}

func (l *LED) Set(side brick.Side, color brick.Color, intensity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels[side][color] = intensity
	return nil
}

// Level reports the last intensity written to the given channel.
func (l *LED) Level(side brick.Side, color brick.Color) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.levels[side][color]
}

// TextOp and CircleOp are display primitives recorded by Display.
type TextOp struct {
	X, Y int
	S    string
}

type CircleOp struct {
	X, Y, R int
	Filled  bool
}

// Frame is the set of primitives drawn since the last Clear.
type Frame struct {
	Texts   []TextOp
	Circles []CircleOp
}

// Display records drawing primitives instead of rasterizing them.
type Display struct {
	mu    sync.Mutex
	w, h  int
	frame Frame
}

func NewDisplay(w, h int) *Display {
	return &Display{w: w, h: h}
}

func (d *Display) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = Frame{}
	return nil
}

func (d *Display) Text(x, y int, s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.Texts = append(d.frame.Texts, TextOp{X: x, Y: y, S: s})
	return nil
}

func (d *Display) FillCircle(x, y, r int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.Circles = append(d.frame.Circles, CircleOp{X: x, Y: y, R: r, Filled: true})
	return nil
}

func (d *Display) StrokeCircle(x, y, r int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame.Circles = append(d.frame.Circles, CircleOp{X: x, Y: y, R: r})
	return nil
}

func (d *Display) Size() (int, int) { return d.w, d.h }

// Snapshot returns a copy of the current frame.
func (d *Display) Snapshot() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := Frame{
		Texts:   append([]TextOp(nil), d.frame.Texts...),
		Circles: append([]CircleOp(nil), d.frame.Circles...),
	}
	return f
}
