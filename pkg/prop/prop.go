package prop

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pion/mediafilter/pkg/frame"
)

// MediaConstraints describes the source a caller wants. Nil constraints
// accept any value.
type MediaConstraints struct {
	DeviceID StringConstraint
	VideoConstraints
}

func (m *MediaConstraints) String() string {
	return prettifyStruct(m)
}

// Media describes what a source actually provides.
type Media struct {
	DeviceID string
	Video
}

func (m *Media) String() string {
	return prettifyStruct(m)
}

func prettifyStruct(i interface{}) string {
	var rows []string
	var addRows func(int, reflect.Value)
	addRows = func(level int, obj reflect.Value) {
		typeOf := obj.Type()
		for i := 0; i < obj.NumField(); i++ {
			field := typeOf.Field(i)
			value := obj.Field(i)

			padding := strings.Repeat("  ", level)
			switch value.Kind() {
			case reflect.Struct:
				rows = append(rows, fmt.Sprintf("%v%v:", padding, field.Name))
				addRows(level+1, value)
			case reflect.Interface:
				if value.IsNil() {
					rows = append(rows, fmt.Sprintf("%v%v: any", padding, field.Name))
				} else {
					rows = append(rows, fmt.Sprintf("%v%v: %v", padding, field.Name, value))
				}
			default:
				rows = append(rows, fmt.Sprintf("%v%v: %v", padding, field.Name, value))
			}
		}
	}

	addRows(0, reflect.ValueOf(i).Elem())
	return strings.Join(rows, "\n")
}

// setterFn is a callback function to set value from fieldB to fieldA
type setterFn func(fieldA, fieldB reflect.Value)

// merge merges all the field values from o to p, except zero values. It's
// guaranteed that setterFn will be called when fieldA and fieldB are not
// struct.
func (p *Media) merge(o interface{}, set setterFn) {
	rp := reflect.ValueOf(p).Elem()
	ro := reflect.ValueOf(o)

	// merge b fields to a recursively
	var merge func(a, b reflect.Value)
	merge = func(a, b reflect.Value) {
		numFields := a.NumField()
		for i := 0; i < numFields; i++ {
			fieldA := a.Field(i)
			fieldB := b.Field(i)

			// if a is a struct, b is also a struct. Then,
			// we recursively merge them
			if fieldA.Kind() == reflect.Struct {
				merge(fieldA, fieldB)
				continue
			}

			// TODO: Replace this with fieldB.IsZero() when we move to go1.13
			// If non-boolean or non-discrete values are zeroes we skip them
			if fieldB.Interface() == reflect.Zero(fieldB.Type()).Interface() &&
				fieldB.Kind() != reflect.Bool {
				continue
			}

			set(fieldA, fieldB)
		}
	}

	merge(rp, ro)
}

// Merge merges all the field values from o to p, except zero values.
func (p *Media) Merge(o Media) {
	p.merge(o, func(fieldA, fieldB reflect.Value) {
		fieldA.Set(fieldB)
	})
}

// MergeConstraints merges the values constraints pin down into p.
func (p *Media) MergeConstraints(o MediaConstraints) {
	p.merge(o, func(fieldA, fieldB reflect.Value) {
		switch c := fieldB.Interface().(type) {
		case IntConstraint:
			if v, ok := c.Value(); ok {
				fieldA.Set(reflect.ValueOf(v))
			}
		case FloatConstraint:
			if v, ok := c.Value(); ok {
				fieldA.Set(reflect.ValueOf(v))
			}
		case StringConstraint:
			if v, ok := c.Value(); ok {
				fieldA.Set(reflect.ValueOf(v))
			}
		case FrameFormatConstraint:
			if v, ok := c.Value(); ok {
				fieldA.Set(reflect.ValueOf(v))
			}
		default:
			panic("unsupported property type")
		}
	})
}

// FitnessDistance returns how far m is from the constraints, 0 being a
// perfect match. ok is false when m violates an exact constraint.
//
// See https://w3c.github.io/mediacapture-main/#dfn-fitness-distance
func (p *MediaConstraints) FitnessDistance(o Media) (float64, bool) {
	cmps := comparisons{}
	cmps.add(p.DeviceID, o.DeviceID)
	cmps.add(p.Width, o.Width)
	cmps.add(p.Height, o.Height)
	cmps.add(p.FrameRate, o.FrameRate)
	cmps.add(p.FrameFormat, o.FrameFormat)
	return cmps.fitnessDistance()
}

type comparisons []struct {
	desired, actual interface{}
}

func (c *comparisons) add(desired, actual interface{}) {
	if desired != nil {
		*c = append(*c,
			struct{ desired, actual interface{} }{
				desired, actual,
			},
		)
	}
}

func (c *comparisons) fitnessDistance() (float64, bool) {
	var dist float64
	for _, field := range *c {
		var d float64
		var ok bool
		switch c := field.desired.(type) {
		case IntConstraint:
			if actual, typeOK := field.actual.(int); typeOK {
				d, ok = c.Compare(actual)
			} else {
				panic("wrong type of actual value")
			}
		case FloatConstraint:
			if actual, typeOK := field.actual.(float32); typeOK {
				d, ok = c.Compare(actual)
			} else {
				panic("wrong type of actual value")
			}
		case StringConstraint:
			if actual, typeOK := field.actual.(string); typeOK {
				d, ok = c.Compare(actual)
			} else {
				panic("wrong type of actual value")
			}
		case FrameFormatConstraint:
			if actual, typeOK := field.actual.(frame.Format); typeOK {
				d, ok = c.Compare(actual)
			} else {
				panic("wrong type of actual value")
			}
		default:
			panic("unsupported constraint type")
		}
		dist += d
		if !ok {
			return 0, false
		}
	}
	return dist, true
}

// VideoConstraints constrains the picture of a source.
type VideoConstraints struct {
	Width, Height IntConstraint
	FrameRate     FloatConstraint
	FrameFormat   FrameFormatConstraint
}

// Video represents a video's properties
type Video struct {
	Width, Height int
	FrameRate     float32
	FrameFormat   frame.Format
}
