package driver

import (
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
)

// OpenCloser is the lifecycle every adapter implements.
type OpenCloser interface {
	Open() error
	Close() error
}

// Infoer reports static information about a driver.
type Infoer interface {
	Info() Info
}

// Info is the static description of a registered driver.
type Info struct {
	Label      string
	DeviceType DeviceType
	Name       string
	Priority   Priority
}

// Adapter is the interface a frame source implements before it's
// registered. Properties is only called while the adapter is open.
type Adapter interface {
	OpenCloser
	Properties() []prop.Media
}

// VideoRecorder is implemented by adapters producing video.
type VideoRecorder interface {
	VideoRecord(p prop.Media) (r video.Reader, err error)
}

// Driver is a registered Adapter with an identity and a lifecycle state.
type Driver interface {
	Adapter
	Infoer
	ID() string
	Status() State
}
