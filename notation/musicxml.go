// Package notation renders a voicing sequence as a MusicXML score: one
// measure per chord with the chord symbol above it and the voicing
// arpeggiated as two quarter notes and a half note.
package notation

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
)

const (
	doctype = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 3.1 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">`

	// notes are written an octave above the voicing for readability
	displayTranspose = 12
)

type Score struct {
	XMLName  xml.Name  `xml:"score-partwise"`
	Version  string    `xml:"version,attr"`
	Title    string    `xml:"work>work-title"`
	PartList []partDef `xml:"part-list>score-part"`
	Parts    []Part    `xml:"part"`
}

type partDef struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"part-name"`
}

type Part struct {
	ID       string    `xml:"id,attr"`
	Measures []Measure `xml:"measure"`
}

type Measure struct {
	Number     int         `xml:"number,attr"`
	Attributes *attributes `xml:"attributes,omitempty"`
	Harmony    *Harmony    `xml:"harmony,omitempty"`
	Notes      []Note      `xml:"note"`
}

type attributes struct {
	Divisions int    `xml:"divisions"`
	Fifths    int    `xml:"key>fifths"`
	Beats     int    `xml:"time>beats"`
	BeatType  int    `xml:"time>beat-type"`
	Sign      string `xml:"clef>sign"`
	Line      int    `xml:"clef>line"`
}

type Harmony struct {
	Root Step `xml:"root"`
	Kind Kind `xml:"kind"`
}

type Step struct {
	Step  string `xml:"root-step"`
	Alter int    `xml:"root-alter,omitempty"`
}

type Kind struct {
	Text  string `xml:"text,attr"`
	Value string `xml:",chardata"`
}

type Note struct {
	Pitch    Pitch  `xml:"pitch"`
	Duration int    `xml:"duration"`
	Type     string `xml:"type"`
}

type Pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

var kinds = map[chord.Quality]string{
	chord.Major:      "major",
	chord.Minor:      "minor",
	chord.Diminished: "diminished",
	chord.Augmented:  "augmented",
}

// split turns "F#" into ("F", 1) and "Bb" into ("B", -1).
func split(name string) (string, int) {
	if len(name) < 2 {
		return name, 0
	}
	switch name[1] {
	case '#':
		return name[:1], 1
	case 'b':
		return name[:1], -1
	}
	return name[:1], 0
}

// spell writes pitch using the note name from the arrangement, so an
// E# stays E# rather than becoming F.
func spell(name string, pitch int) Pitch {
	step, alter := split(name)
	natural := pitch - alter
	return Pitch{Step: step, Alter: alter, Octave: natural/12 - 1}
}

// NewScore lays steps out one measure each. Arrangement strings are the
// space-separated note names from the voicing generator.
func NewScore(title string, steps []model.Step) (*Score, error) {
	part := Part{ID: "P1"}
	for i, s := range steps {
		c, err := chord.Parse(s.Chord)
		if err != nil {
			return nil, err
		}
		names, err := noteNames(s.Arrangement)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}

		rootStep, rootAlter := split(c.Spelling)
		m := Measure{
			Number: i + 1,
			Harmony: &Harmony{
				Root: Step{Step: rootStep, Alter: rootAlter},
				Kind: Kind{Text: s.Chord[len(c.Spelling):], Value: kinds[c.Quality]},
			},
		}
		if i == 0 {
			m.Attributes = &attributes{Divisions: 1, Beats: 4, BeatType: 4, Sign: "G", Line: 2}
		}
		for k, pitch := range s.Voicing {
			n := Note{Pitch: spell(names[k], pitch+displayTranspose), Duration: 1, Type: "quarter"}
			if k == len(s.Voicing)-1 {
				n.Duration, n.Type = 2, "half"
			}
			m.Notes = append(m.Notes, n)
		}
		part.Measures = append(part.Measures, m)
	}

	return &Score{
		Version:  "3.1",
		Title:    title + "\n(Voice Leading Étude)",
		PartList: []partDef{{ID: "P1", Name: "Voice Leading"}},
		Parts:    []Part{part},
	}, nil
}

func noteNames(arrangement string) ([3]string, error) {
	var res [3]string
	fields := strings.Fields(arrangement)
	if len(fields) != len(res) {
		return res, errors.Errorf("arrangement %q needs three notes", arrangement)
	}
	for i, name := range fields {
		if _, ok := chord.PitchClass(name); !ok {
			return res, errors.Errorf("unknown note %q in arrangement %q", name, arrangement)
		}
		res[i] = name
	}
	return res, nil
}

func (s *Score) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header+doctype+"\n"); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encoding musicxml")
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile renders the score and writes it to path in one go, so a failed
// render leaves no partial file behind.
func WriteFile(path, title string, steps []model.Step) error {
	score, err := NewScore(title, steps)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := score.Write(&buf); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "writing %s", path)
}
