package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/voicelead/config"
	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
)

func TestParseRange(t *testing.T) {
	pair, err := parseRange("40,90")
	require.NoError(t, err)
	assert.Equal(t, []int{40, 90}, pair)

	pair, err = parseRange(" 48 , 72 ")
	require.NoError(t, err)
	assert.Equal(t, []int{48, 72}, pair)

	for _, bad := range []string{"", "40", "40,90,100", "a,b", "40,"} {
		_, err := parseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "giant_steps.mid"), outputPath("out", "Giant Steps", ".mid"))
}

func parseLeadFlags(t *testing.T, args ...string) (*cobra.Command, leadFlags) {
	var fl leadFlags
	cmd := &cobra.Command{Use: "lead"}
	bindLeadFlags(cmd.Flags(), &fl)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, fl
}

func TestResolveConfigDefaults(t *testing.T) {
	cmd, fl := parseLeadFlags(t)
	cfg, err := resolveConfig(cmd, fl)
	require.NoError(t, err)

	assert.Equal(t, []int{40, 90}, cfg.Range)
	assert.Equal(t, "spread", cfg.Positions)
	assert.True(t, cfg.UsesStandard())
	assert.Len(t, cfg.Name, len("20060102"))
}

func TestResolveConfigFlagsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "From File"
chart = "C F G"
range = [48, 79]
positions = "close"
`), 0o644))

	cmd, fl := parseLeadFlags(t, "--config", path, "--range", "50,80", "--allow-holds")
	cfg, err := resolveConfig(cmd, fl)
	require.NoError(t, err)

	assert.Equal(t, "From File", cfg.Name)
	assert.Equal(t, "C F G", cfg.Chart)
	assert.Equal(t, []int{50, 80}, cfg.Range)
	assert.Equal(t, "close", cfg.Positions)
	assert.True(t, cfg.AllowHolds)
}

func TestResolveConfigStandardClearsChords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`chords = ["C", "G"]`), 0o644))

	cmd, fl := parseLeadFlags(t, "--config", path, "--standard", "26-2")
	cfg, err := resolveConfig(cmd, fl)
	require.NoError(t, err)
	assert.True(t, cfg.UsesStandard())
	assert.Equal(t, "26-2", cfg.Standard)
}

func TestResolveConfigBadRange(t *testing.T) {
	cmd, fl := parseLeadFlags(t, "--range", "40")
	_, err := resolveConfig(cmd, fl)
	assert.Error(t, err)
}

func quietContext() context.Context {
	return withLogger(context.Background(), log.New(io.Discard))
}

func TestRunLeadWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Name = "Two Five One"
	cfg.Chart = "Dm G C"
	cfg.Positions = "all"
	cfg.Range = []int{48, 79}
	cfg.OutputDir = filepath.Join(dir, "nested")
	cfg.OutputMidi, cfg.OutputXML, cfg.OutputJSON = true, true, true

	fl := leadFlags{graphDOT: filepath.Join(dir, "graph.dot")}
	require.NoError(t, runLead(quietContext(), cfg, fl))

	s, err := midi.ReadMidiFile(filepath.Join(cfg.OutputDir, "two_five_one.mid"))
	require.NoError(t, err)
	assert.Len(t, midi.NoteEvents(s), 18)

	xml, err := os.ReadFile(filepath.Join(cfg.OutputDir, "two_five_one.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<score-partwise")

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "two_five_one.json"))
	require.NoError(t, err)
	var res model.VoicingsResponse
	require.NoError(t, json.Unmarshal(data, &res))
	assert.NotEmpty(t, res.Id)
	require.Len(t, res.Steps, 3)
	assert.Equal(t, "Dm", res.Steps[0].Chord)

	dot, err := os.ReadFile(fl.graphDOT)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "digraph"))
}

func TestRunLeadWritesNothingByDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Chart = "C F G"
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")

	require.NoError(t, runLead(quietContext(), cfg, leadFlags{}))

	_, err := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunLeadWritesOnlySelectedOutputs(t *testing.T) {
	cmd, fl := parseLeadFlags(t, "--chords", "C F G", "--output-dir", t.TempDir(), "--name", "Only Midi", "--output-midi")
	cfg, err := resolveConfig(cmd, fl)
	require.NoError(t, err)

	require.NoError(t, runLead(quietContext(), cfg, fl))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "only_midi.mid", entries[0].Name())
}

func TestResolveConfigOutputsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("output_xml = true\noutput_json = true\n"), 0o644))

	cmd, fl := parseLeadFlags(t, "--config", path, "--output-json=false")
	cfg, err := resolveConfig(cmd, fl)
	require.NoError(t, err)

	assert.False(t, cfg.OutputMidi)
	assert.True(t, cfg.OutputXML)
	assert.False(t, cfg.OutputJSON)
}

func TestRunLeadReportsErrorCode(t *testing.T) {
	cfg := config.Default()
	cfg.Chart = "C G"
	cfg.Range = []int{60, 61}
	cfg.OutputDir = t.TempDir()

	err := runLead(quietContext(), cfg, leadFlags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_FEASIBLE_VOICING")
}

func TestRenderPath(t *testing.T) {
	out := renderPath("Demo", model.Result{
		Cost: 3,
		Steps: []model.Step{
			{Chord: "C", Arrangement: "E G C", Voicing: model.Voicing{64, 67, 72}},
			{Chord: "G", Arrangement: "D G B", Voicing: model.Voicing{62, 67, 71}},
		},
	})
	assert.Contains(t, out, "Demo")
	assert.Contains(t, out, "D G B")
	assert.Contains(t, out, "(62, 67, 71)")
	assert.Contains(t, out, "total cost")
}

func TestStandardsSorted(t *testing.T) {
	res := standards()
	require.Len(t, res, 3)
	assert.Equal(t, "26-2", res[0].Name)
	assert.Equal(t, "all-the-things-you-are", res[1].Name)
	assert.Equal(t, "giant-steps", res[2].Name)
	assert.Len(t, res[2].Chords, 32)
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C4", noteName(60))
	assert.Equal(t, "Bb3", noteName(58))
	assert.Equal(t, "C-1", noteName(0))
}
