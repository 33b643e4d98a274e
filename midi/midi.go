package midi

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// NoteEvent is a note-on or note-off read back from a file.
type NoteEvent struct {
	AbsTicks uint64
	Key      uint8
	Velocity uint8
	On       bool
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}

	return res, nil
}

// NoteEvents flattens the note-on and note-off events of every track, in
// track order, with absolute tick offsets.
func NoteEvents(s *smf.SMF) []NoteEvent {
	var res []NoteEvent
	for _, track := range s.Tracks {
		var absTicks uint64
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			var channel, key, velocity uint8
			switch {
			case evt.Message.GetNoteOn(&channel, &key, &velocity):
				res = append(res, NoteEvent{AbsTicks: absTicks, Key: key, Velocity: velocity, On: true})
			case evt.Message.GetNoteOff(&channel, &key, &velocity):
				res = append(res, NoteEvent{AbsTicks: absTicks, Key: key, Velocity: velocity})
			}
		}
	}
	return res
}

// Tempo returns the first tempo meta event, or 0 when there is none.
func Tempo(s *smf.SMF) float64 {
	for _, track := range s.Tracks {
		for _, evt := range track {
			var bpm float64
			if evt.Message.GetMetaTempo(&bpm) {
				return bpm
			}
		}
	}
	return 0
}
