package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/voicelead/model"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "voicelead.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
name = "Blues in F"
chart = "F | Bb | F | F"
range = [48, 84]
positions = "close"

[midi]
port = "IAC Driver"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("Blues in F", cfg.Name)
	assert.Equal("close", cfg.Positions)
	assert.Equal("IAC Driver", cfg.Midi.Port)
	assert.False(cfg.UsesStandard())

	r, err := cfg.PitchRange()
	require.NoError(t, err)
	assert.Equal(model.Range{Min: 48, Max: 84}, r)

	chords, err := cfg.Progression()
	require.NoError(t, err)
	require.Len(t, chords, 4)
	assert.Equal("Bb", chords[1].Name)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `name = "x"`))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("spread", cfg.Positions)
	assert.True(cfg.UsesStandard())

	chords, err := cfg.Progression()
	require.NoError(t, err)
	assert.Len(chords, 32)

	r, err := cfg.PitchRange()
	require.NoError(t, err)
	assert.Equal(model.Range{Min: 40, Max: 90}, r)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, `tempo = 90`))
	assert.Error(t, err)
}

func TestRangeFromSlice(t *testing.T) {
	_, err := RangeFromSlice([]int{40})
	assert.Error(t, err)
}

func TestUnknownStandard(t *testing.T) {
	cfg := Default()
	cfg.Standard = "nope"
	_, err := cfg.Progression()
	assert.Error(t, err)
}
