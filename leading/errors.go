package leading

import (
	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/optimize"
	"github.com/jsphweid/voicelead/voicing"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeInvalidChord           Code = "INVALID_CHORD"
	CodeInvalidRange           Code = "INVALID_RANGE"
	CodeEmptyProgression       Code = "EMPTY_PROGRESSION"
	CodeNoFeasibleVoicing      Code = "NO_FEASIBLE_VOICING"
	CodeNoFeasibleVoiceLeading Code = "NO_FEASIBLE_VOICE_LEADING"
	CodeInternal               Code = "INTERNAL_ERROR"
)

// ErrorCode classifies an error returned by Solve.
func ErrorCode(err error) Code {
	var parseErr *chord.ParseError
	switch {
	case errors.As(err, &parseErr):
		return CodeInvalidChord
	case errors.Is(err, voicing.ErrInvalidRange):
		return CodeInvalidRange
	case errors.Is(err, ErrEmptyProgression):
		return CodeEmptyProgression
	case errors.Is(err, optimize.ErrNoFeasibleVoicing):
		return CodeNoFeasibleVoicing
	case errors.Is(err, optimize.ErrNoFeasibleVoiceLeading):
		return CodeNoFeasibleVoiceLeading
	}
	return CodeInternal
}

// IsUserError reports whether err was caused by the input rather than a bug.
func IsUserError(err error) bool {
	return ErrorCode(err) != CodeInternal
}
