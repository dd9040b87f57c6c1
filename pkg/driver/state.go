package driver

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a driver operation doesn't fit the
// driver's current state.
var ErrInvalidState = errors.New("invalid driver state")

// State represents driver's state
type State string

const (
	// StateClosed means that the driver has not been opened. In this state,
	// all information related to the hardware are still unknown. For example,
	// the supported frame formats are still unknown.
	StateClosed State = "closed"
	// StateOpened means that the driver is already opened and information about
	// the hardware are already known and may be extracted from the driver.
	StateOpened State = "opened"
	// StateRunning means that the driver has been sending data. The caller
	// who started the driver may start reading data from the hardware.
	StateRunning State = "running"
)

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next
func (s *State) Update(next State, f func() error) error {
	checkFunc := map[State]func() error{
		StateOpened:  s.toOpened,
		StateClosed:  s.toClosed,
		StateRunning: s.toRunning,
	}[next]
	if checkFunc == nil {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidState, next)
	}

	if err := checkFunc(); err != nil {
		return err
	}

	err := f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toOpened() error {
	if *s != StateClosed {
		return fmt.Errorf("%w: driver is already opened", ErrInvalidState)
	}
	return nil
}

func (s *State) toClosed() error {
	return nil
}

func (s *State) toRunning() error {
	switch *s {
	case StateClosed:
		return fmt.Errorf("%w: driver is closed", ErrInvalidState)
	case StateRunning:
		return fmt.Errorf("%w: driver is already running", ErrInvalidState)
	}
	return nil
}
