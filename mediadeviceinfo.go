package mediafilter

import "github.com/pion/mediafilter/pkg/driver"

// MediaDeviceType enumerates type of media device.
type MediaDeviceType int

// MediaDeviceType definitions.
const (
	VideoInput MediaDeviceType = iota + 1
)

func (t MediaDeviceType) String() string {
	if t == VideoInput {
		return "videoinput"
	}
	return "unknown"
}

// MediaDeviceInfo represents https://w3c.github.io/mediacapture-main/#dom-mediadeviceinfo
type MediaDeviceInfo struct {
	DeviceID   string
	Kind       MediaDeviceType
	Label      string
	DeviceType driver.DeviceType
	Name       string
	Status     driver.State
}
