package voicing

import (
	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
)

var (
	ErrInvalidRange = errors.New("invalid pitch range")
	ErrUnknownNote  = errors.New("unknown note name")
)

const (
	// pitch of C in the reference octave
	referenceC = 60
	octave     = 12

	lowestPitch  = 0
	highestPitch = 127
)

// ValidateRange rejects empty ranges and ranges outside MIDI's 0-127.
func ValidateRange(r model.Range) error {
	if r.Min > r.Max {
		return errors.Wrapf(ErrInvalidRange, "min %d is above max %d", r.Min, r.Max)
	}
	if r.Min < lowestPitch || r.Max > highestPitch {
		return errors.Wrapf(ErrInvalidRange, "%v is outside %d-%d", r, lowestPitch, highestPitch)
	}
	return nil
}

// octaves is every pitch of class pc that lies inside r, ascending.
func octaves(pc int, r model.Range) []int {
	base := referenceC + pc
	lo := util.CeilDiv(r.Min-base, octave)
	hi := util.FloorDiv(r.Max-base, octave)

	var res []int
	for shift := lo; shift <= hi; shift++ {
		res = append(res, base+shift*octave)
	}
	return res
}

// Enumerate returns every voicing of a inside r: each voice independently
// shifted by whole octaves, kept when strictly ascending with no adjacent gap
// wider than an octave. Voicings come out in ascending lexicographic order.
// An empty result is not an error.
func Enumerate(a chord.Arrangement, r model.Range) ([]model.Voicing, error) {
	if err := ValidateRange(r); err != nil {
		return nil, err
	}

	var candidates [3][]int
	for i, name := range a.Notes {
		pc, ok := chord.PitchClass(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownNote, "%q in %q", name, a.String())
		}
		candidates[i] = octaves(pc, r)
	}

	var res []model.Voicing
	for _, low := range candidates[0] {
		for _, mid := range candidates[1] {
			for _, high := range candidates[2] {
				v := model.Voicing{low, mid, high}
				if v.Valid(r) {
					res = append(res, v)
				}
			}
		}
	}
	return res, nil
}
