package arm

import (
	"runtime"
	"time"
)

// runPeriodic invokes fn once per period until the close flag is raised.
// Each wakeup is an absolute deadline computed from the previous deadline,
// not from the current time, so a late tick does not delay later ones.
// Any error from fn is fatal: it is reported, the close flag is latched and
// the activity exits.
func (c *Controller) runPeriodic(name string, period time.Duration, prio int, fn func() error) {
	defer c.wg.Done()
	runtime.LockOSThread()
	if err := setFIFOPriority(prio); err != nil {
		c.prioWarn.Do(func() {
			c.logf("real-time priority unavailable, running with default scheduling: %v", err)
		})
	}

	next := time.Now()
	for !c.close.IsSet() {
		if err := fn(); err != nil {
			c.fatal(name, err)
			return
		}
		next = next.Add(period)
		time.Sleep(time.Until(next))
	}
}

// fatal records the first device failure and latches the close flag so every
// other activity winds down within its own period.
func (c *Controller) fatal(name string, err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
	c.logf("%s: fatal: %v", name, err)
	c.close.Set()
}
