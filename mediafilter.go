// Package mediafilter opens a frame source, runs every frame through the
// selected filter and keeps the displayed frame for preview and export.
package mediafilter

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/pion/mediafilter/internal/logging"
	"github.com/pion/mediafilter/pkg/driver"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
)

var logger = logging.NewLogger("mediafilter")

var errNotFound = errors.New("failed to find the best driver that fits the constraints")

// SourceConstraints selects a frame source. Media constraints are matched
// against the properties every driver reports; DeviceType and Label narrow
// down the drivers taking part.
type SourceConstraints struct {
	prop.MediaConstraints

	// DeviceType restricts the search to one kind of driver. Empty accepts
	// cameras and test patterns; screens must be asked for explicitly.
	DeviceType driver.DeviceType
	// Label restricts the search to the driver with this label.
	Label string
}

func (c *SourceConstraints) filter() driver.FilterFn {
	filters := []driver.FilterFn{driver.FilterVideoRecorder()}
	if c.DeviceType == "" {
		filters = append(filters, driver.FilterNot(driver.FilterDeviceType(driver.Screen)))
	} else {
		filters = append(filters, driver.FilterDeviceType(c.DeviceType))
	}
	if c.Label != "" {
		filters = append(filters, driver.FilterLabel(c.Label))
	}
	if id, ok := deviceID(c.DeviceID); ok {
		filters = append(filters, driver.FilterID(id))
	}
	return driver.FilterAnd(filters...)
}

func deviceID(c prop.StringConstraint) (string, bool) {
	if c == nil {
		return "", false
	}
	id, ok := c.Value()
	return id, ok && id != ""
}

// EnumerateDevices lists the registered frame sources in registration order.
func EnumerateDevices() []MediaDeviceInfo {
	drivers := driver.GetManager().Query(driver.FilterVideoRecorder())
	info := make([]MediaDeviceInfo, 0, len(drivers))
	for _, d := range drivers {
		driverInfo := d.Info()
		info = append(info, MediaDeviceInfo{
			DeviceID:   d.ID(),
			Kind:       VideoInput,
			Label:      driverInfo.Label,
			DeviceType: driverInfo.DeviceType,
			Name:       driverInfo.Name,
			Status:     d.Status(),
		})
	}
	return info
}

type driverProperties struct {
	driver driver.Driver
	props  []prop.Media
}

// queryDriverProperties opens every closed driver matching filter long
// enough to read its properties.
func queryDriverProperties(filter driver.FilterFn) []driverProperties {
	var needToClose []driver.Driver
	drivers := driver.GetManager().Query(filter)
	result := make([]driverProperties, 0, len(drivers))

	for _, d := range drivers {
		if d.Status() == driver.StateClosed {
			if err := d.Open(); err != nil {
				logger.Warnf("skipping %q: %v", d.Info().Label, err)
				continue
			}
			needToClose = append(needToClose, d)
		}

		result = append(result, driverProperties{driver: d, props: d.Properties()})
	}

	for _, d := range needToClose {
		if err := d.Close(); err != nil {
			logger.Warnf("failed to close %q: %v", d.Info().Label, err)
		}
	}

	return result
}

// selectBestDriver implements the SelectSettings algorithm. Ties go to the
// driver registered first.
// Reference: https://w3c.github.io/mediacapture-main/#dfn-selectsettings
func selectBestDriver(filter driver.FilterFn, constraints prop.MediaConstraints) (driver.Driver, prop.Media, error) {
	var bestDriver driver.Driver
	var bestProp prop.Media
	minFitnessDist := math.Inf(1)

	for _, dp := range queryDriverProperties(filter) {
		priority := float64(dp.driver.Info().Priority)
		for _, p := range dp.props {
			fitnessDist, ok := constraints.FitnessDistance(p)
			if !ok {
				continue
			}
			fitnessDist -= priority
			if fitnessDist < minFitnessDist {
				minFitnessDist = fitnessDist
				bestDriver = dp.driver
				bestProp = p
			}
		}
	}

	if bestDriver == nil {
		return nil, prop.Media{}, errNotFound
	}

	var selected prop.Media
	selected.MergeConstraints(constraints)
	selected.Merge(bestProp)
	return bestDriver, selected, nil
}

// Source is an opened frame source. It implements video.Reader.
type Source struct {
	driver   driver.Driver
	reader   video.Reader
	selected prop.Media

	closeOnce sync.Once
	closeErr  error
}

// OpenVideoSource picks the driver that best fits c, opens it and starts
// recording with the selected properties.
func OpenVideoSource(c SourceConstraints) (*Source, error) {
	d, selected, err := selectBestDriver(c.filter(), c.MediaConstraints)
	if err != nil {
		return nil, err
	}

	if d.Status() == driver.StateClosed {
		if err := d.Open(); err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", d.Info().Label, err)
		}
	}

	recorder, ok := d.(driver.VideoRecorder)
	if !ok {
		d.Close()
		return nil, fmt.Errorf("%q is not a video recorder", d.Info().Label)
	}

	r, err := recorder.VideoRecord(selected)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to start %q: %w", d.Info().Label, err)
	}

	logger.Infof("opened %s %q: %dx%d %s @ %.2f fps", d.Info().DeviceType, d.Info().Label,
		selected.Width, selected.Height, selected.FrameFormat, selected.FrameRate)
	return &Source{driver: d, reader: r, selected: selected}, nil
}

// Read implements video.Reader.
func (s *Source) Read() (image.Image, func(), error) {
	return s.reader.Read()
}

// Property returns the properties the source was started with.
func (s *Source) Property() prop.Media {
	return s.selected
}

// Info describes the driver behind the source.
func (s *Source) Info() MediaDeviceInfo {
	info := s.driver.Info()
	return MediaDeviceInfo{
		DeviceID:   s.driver.ID(),
		Kind:       VideoInput,
		Label:      info.Label,
		DeviceType: info.DeviceType,
		Name:       info.Name,
		Status:     s.driver.Status(),
	}
}

// Close stops the driver. Reads after Close fail.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.driver.Close()
		logger.Debugf("closed %q", s.driver.Info().Label)
	})
	return s.closeErr
}
