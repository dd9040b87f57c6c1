package driver

import (
	"fmt"
	"sync"

	"github.com/pion/mediafilter/internal/logging"
)

var logger = logging.NewLogger("mediafilter/driver")

// FilterFn is being used to decide if a driver should be included in the
// query result.
type FilterFn func(Driver) bool

// FilterVideoRecorder return a filter function to get a list of registered VideoRecorders
func FilterVideoRecorder() FilterFn {
	return func(d Driver) bool {
		_, ok := d.(VideoRecorder)
		return ok
	}
}

// FilterDeviceType returns a filter function to match a driver by its device type
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Driver) bool {
		return d.Info().DeviceType == t
	}
}

// FilterID return a filter function to get registered drivers which have given ID
func FilterID(id string) FilterFn {
	return func(d Driver) bool {
		return d.ID() == id
	}
}

// FilterLabel returns a filter function to match a driver by its label
func FilterLabel(label string) FilterFn {
	return func(d Driver) bool {
		return d.Info().Label == label
	}
}

// FilterAnd returns a filter function to take logical conjunction of given filters.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Driver) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// FilterNot returns a filter function to take logical inverse of given filter.
func FilterNot(filter FilterFn) FilterFn {
	return func(d Driver) bool {
		return !filter(d)
	}
}

// Manager is a singleton to manage multiple drivers and their states
type Manager struct {
	mu      sync.RWMutex
	drivers []Driver
}

var manager = &Manager{}

// GetManager gets manager singleton instance
func GetManager() *Manager {
	return manager
}

// Register registers adapter to be discoverable by Query
func (m *Manager) Register(a Adapter, info Info) error {
	d := wrapAdapter(a, info)
	if d == nil {
		return fmt.Errorf("adapter has to be a VideoRecorder")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = append(m.drivers, d)
	logger.Debugf("registered %s driver %q (%s)", info.DeviceType, info.Label, d.ID())
	return nil
}

// Query queries by using f to filter drivers, and simply return the filtered results.
// Drivers are returned in registration order.
func (m *Manager) Query(filters ...FilterFn) []Driver {
	f := FilterAnd(filters...)

	m.mu.RLock()
	defer m.mu.RUnlock()
	results := make([]Driver, 0)
	for _, d := range m.drivers {
		if ok := f(d); ok {
			results = append(results, d)
		}
	}

	return results
}
