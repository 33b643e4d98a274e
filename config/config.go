// Package config loads run settings from a TOML file. Values left out of the
// file fall back to the environment (see constants) and then to defaults.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"
)

// Config mirrors the lead command's flags.
//
//	name = "Giant Steps"
//	standard = "giant-steps"
//	chart = "B D G Bb | Eb Eb Am D"
//	range = [40, 90]
//	positions = "spread"
//	allow_holds = false
//	output_dir = "./output"
//	output_midi = true
//	output_xml = true
//	output_json = false
//
//	[midi]
//	port = "FluidSynth virtual port"
type Config struct {
	Name       string   `toml:"name"`
	Standard   string   `toml:"standard"`
	Chords     []string `toml:"chords"`
	Chart      string   `toml:"chart"`
	Range      []int    `toml:"range"`
	Positions  string   `toml:"positions"`
	AllowHolds bool     `toml:"allow_holds"`
	OutputDir  string   `toml:"output_dir"`
	OutputMidi bool     `toml:"output_midi"`
	OutputXML  bool     `toml:"output_xml"`
	OutputJSON bool     `toml:"output_json"`
	Midi       Midi     `toml:"midi"`
}

type Midi struct {
	Port string `toml:"port"`
}

// Default is what a run uses with no file, no flags and a clean environment.
func Default() Config {
	return Config{
		Standard:  constants.DefaultStandard,
		Range:     []int{constants.DefaultRange.Min, constants.DefaultRange.Max},
		Positions: chord.PositionsSpread.String(),
		OutputDir: constants.GetOutputDir(),
		Midi:      Midi{Port: constants.GetMidiPort()},
	}
}

// Load decodes path over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

// PitchRange converts the [min, max] pair.
func (c Config) PitchRange() (model.Range, error) {
	return RangeFromSlice(c.Range)
}

func RangeFromSlice(pair []int) (model.Range, error) {
	if len(pair) != 2 {
		return model.Range{}, errors.Errorf("range needs exactly two values, got %v", pair)
	}
	return model.Range{Min: pair[0], Max: pair[1]}, nil
}

// Progression resolves the chords to voice: explicit chords, then a chart,
// then a named standard.
func (c Config) Progression() ([]chord.Chord, error) {
	switch {
	case len(c.Chords) > 0:
		return chord.ParseAll(c.Chords)
	case c.Chart != "":
		return chord.ParseChart(c.Chart)
	}

	tokens, ok := constants.GetStandard(c.Standard)
	if !ok {
		return nil, errors.Errorf("unknown standard %q", c.Standard)
	}
	return chord.ParseAll(tokens)
}

// UsesStandard reports whether Progression falls back to the named standard.
func (c Config) UsesStandard() bool {
	return len(c.Chords) == 0 && c.Chart == ""
}
