package model

import "fmt"

// Range is an inclusive span of MIDI pitch numbers.
type Range struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

func (r Range) Contains(pitch int) bool {
	return pitch >= r.Min && pitch <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%d,%d", r.Min, r.Max)
}
