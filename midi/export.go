package midi

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"
)

// Encode arpeggiates each step into a single-track SMF: the two lower voices
// last a quarter note, the top voice a half note.
func Encode(steps []model.Step) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(constants.Tempo))

	quarter := uint32(constants.TicksPerQuarter)
	for _, step := range steps {
		for i, pitch := range step.Voicing {
			if pitch < 0 || pitch > 127 {
				return nil, errors.Errorf("pitch %d of %s is not a midi key", pitch, step.Chord)
			}
			key := uint8(pitch)
			length := quarter
			if i == len(step.Voicing)-1 {
				length = 2 * quarter
			}
			track.Add(0, gomidi.NoteOn(0, key, constants.FileVelocity))
			track.Add(length, gomidi.NoteOffVelocity(0, key, constants.FileVelocity))
		}
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, errors.Wrap(err, "adding track")
	}
	return s, nil
}

func Write(w io.Writer, steps []model.Step) error {
	s, err := Encode(steps)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return errors.Wrap(err, "writing midi")
}

// WriteFile writes steps to path. Nothing is created when encoding fails.
func WriteFile(path string, steps []model.Step) error {
	var buf bytes.Buffer
	if err := Write(&buf, steps); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "writing %s", path)
}
