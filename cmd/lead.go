package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/config"
	"github.com/jsphweid/voicelead/graph"
	"github.com/jsphweid/voicelead/leading"
	"github.com/jsphweid/voicelead/midi"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/notation"
	"github.com/jsphweid/voicelead/util"
)

type leadFlags struct {
	configPath string
	chords     string
	standard   string
	pitchRange string
	positions  string
	allowHolds bool
	name       string
	outputDir  string
	outputMidi bool
	outputXML  bool
	outputJSON bool
	graphDOT   string
	graphSVG   string
	pathOnly   bool
	printGraph bool
	play       bool
	port       string
}

var lead leadFlags

func bindLeadFlags(f *pflag.FlagSet, fl *leadFlags) {
	f.StringVar(&fl.configPath, "config", "", "TOML file with run settings")
	f.StringVar(&fl.chords, "chords", "", `chord chart, e.g. "B D G Bb | Eb Am D G"`)
	f.StringVar(&fl.standard, "standard", "", "bundled progression to voice when no chords are given")
	f.StringVar(&fl.pitchRange, "range", "", `pitch range as "min,max" (default "40,90")`)
	f.StringVar(&fl.positions, "positions", "", "triad positions: spread, close or all (default spread)")
	f.BoolVar(&fl.allowHolds, "allow-holds", false, "let a repeated chord keep its voicing")
	f.StringVar(&fl.name, "name", "", "song name used for titles and file names (default today's date)")
	f.StringVar(&fl.outputDir, "output-dir", "", "directory for generated files")
	f.BoolVar(&fl.outputMidi, "output-midi", false, "write <output-dir>/<name>.mid")
	f.BoolVar(&fl.outputXML, "output-xml", false, "write <output-dir>/<name>.xml as MusicXML")
	f.BoolVar(&fl.outputJSON, "output-json", false, "write <output-dir>/<name>.json")
	f.StringVar(&fl.graphDOT, "graph-dot", "", "write the voice-leading graph as DOT")
	f.StringVar(&fl.graphSVG, "graph-svg", "", "render the voice-leading graph as SVG")
	f.BoolVar(&fl.pathOnly, "graph-path-only", false, "leave edges off the diagram unless they are on the optimal path")
	f.BoolVar(&fl.printGraph, "print-graph", false, "print every node and edge")
	f.BoolVar(&fl.play, "play", false, "play the result on a MIDI output port")
	f.StringVar(&fl.port, "port", "", "MIDI output port name")
}

func init() {
	bindLeadFlags(leadCmd.Flags(), &lead)
	rootCmd.AddCommand(leadCmd)
}

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Voices a chord progression with minimal motion",
	Long: `Voices every chord of a progression as a three-note triad so that the
total movement of the voices is as small as possible, then writes the result
as MIDI, MusicXML and JSON.`,
	Example: `  voicelead lead --chords "C Am F G" --range 48,79 --output-midi --output-xml
  voicelead lead --standard 26-2 --positions close --play`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, lead)
		if err != nil {
			return err
		}
		return runLead(cmd.Context(), cfg, lead)
	},
}

// parseRange reads "min,max".
func parseRange(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, errors.Errorf("range must look like \"min,max\", got %q", s)
	}
	res := make([]int, 0, 2)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "range %q", s)
		}
		res = append(res, n)
	}
	return res, nil
}

// resolveConfig layers set flags over the config file over the defaults,
// which already carry the environment.
func resolveConfig(cmd *cobra.Command, fl leadFlags) (config.Config, error) {
	cfg := config.Default()
	if fl.configPath != "" {
		var err error
		if cfg, err = config.Load(fl.configPath); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("chords") {
		cfg.Chords, cfg.Chart = nil, fl.chords
	}
	if changed("standard") {
		cfg.Chords, cfg.Chart, cfg.Standard = nil, "", fl.standard
	}
	if changed("range") {
		pair, err := parseRange(fl.pitchRange)
		if err != nil {
			return cfg, err
		}
		cfg.Range = pair
	}
	if changed("positions") {
		cfg.Positions = fl.positions
	}
	if changed("allow-holds") {
		cfg.AllowHolds = fl.allowHolds
	}
	if changed("name") {
		cfg.Name = fl.name
	}
	if changed("output-dir") {
		cfg.OutputDir = fl.outputDir
	}
	if changed("output-midi") {
		cfg.OutputMidi = fl.outputMidi
	}
	if changed("output-xml") {
		cfg.OutputXML = fl.outputXML
	}
	if changed("output-json") {
		cfg.OutputJSON = fl.outputJSON
	}
	if changed("port") {
		cfg.Midi.Port = fl.port
	}
	if cfg.Name == "" {
		cfg.Name = time.Now().Format("20060102")
	}
	return cfg, nil
}

func outputPath(dir, name, ext string) string {
	return filepath.Join(dir, util.FileStem(name)+ext)
}

// output is one file lead can write next to the others in the output dir.
type output struct {
	ext   string
	write func(path string) error
}

// outputs lists the files cfg asks for, in the order they are written.
func outputs(cfg config.Config, result model.Result) []output {
	var res []output
	if cfg.OutputMidi {
		res = append(res, output{".mid", func(path string) error {
			return midi.WriteFile(path, result.Steps)
		}})
	}
	if cfg.OutputXML {
		res = append(res, output{".xml", func(path string) error {
			return notation.WriteFile(path, cfg.Name, result.Steps)
		}})
	}
	if cfg.OutputJSON {
		res = append(res, output{".json", func(path string) error {
			return writeJSON(path, result)
		}})
	}
	return res
}

func runLead(ctx context.Context, cfg config.Config, fl leadFlags) error {
	logger := loggerFromContext(ctx)

	r, err := cfg.PitchRange()
	if err != nil {
		return err
	}
	positions, err := chord.ParsePositions(cfg.Positions)
	if err != nil {
		return err
	}
	chords, err := cfg.Progression()
	if err != nil {
		return err
	}
	if cfg.UsesStandard() {
		logger.Info("no chords given, using a standard", "standard", cfg.Standard)
	}

	opts := leading.Options{Positions: positions, Logger: logger}
	if cfg.AllowHolds {
		opts.Policy = graph.AllowHolds{}
	}

	logger.Info("solving", "chords", len(chords), "range", r, "positions", positions)
	sol, err := leading.SolveChords(chords, r, opts)
	if err != nil {
		return errors.Wrapf(err, "[%s]", leading.ErrorCode(err))
	}

	fmt.Print(renderPath(cfg.Name, sol.Result))
	if fl.printGraph {
		fmt.Print(renderGraph(sol.Graph))
	}

	if files := outputs(cfg, sol.Result); len(files) > 0 {
		if err := util.EnsureDir(cfg.OutputDir); err != nil {
			return errors.Wrapf(err, "creating %s", cfg.OutputDir)
		}
		for _, file := range files {
			path := outputPath(cfg.OutputDir, cfg.Name, file.ext)
			if err := file.write(path); err != nil {
				return err
			}
			fmt.Print(renderWritten(path))
		}
	}

	if fl.graphDOT != "" || fl.graphSVG != "" {
		if err := writeGraph(ctx, sol, fl); err != nil {
			return err
		}
	}

	if fl.play {
		return play(ctx, cfg.Midi.Port, sol.Result.Steps)
	}
	return nil
}

func writeJSON(path string, res model.Result) error {
	data, err := json.MarshalIndent(model.VoicingsResponse{
		Id:    uuid.NewString(),
		Cost:  res.Cost,
		Steps: res.Steps,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %s", path)
}

func writeGraph(ctx context.Context, sol *leading.Solution, fl leadFlags) error {
	dotPath, svgPath := fl.graphDOT, fl.graphSVG
	dot := graph.ToDOT(sol.Graph, graph.DOTOptions{Path: sol.Path.Nodes, PathOnly: fl.pathOnly})
	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", dotPath)
		}
		fmt.Print(renderWritten(dotPath))
	}
	if svgPath != "" {
		svg, err := graph.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", svgPath)
		}
		fmt.Print(renderWritten(svgPath))
	}
	return nil
}

func play(ctx context.Context, port string, steps []model.Step) error {
	logger := loggerFromContext(ctx)
	send, closePort, err := midi.OpenPort(port)
	if err != nil {
		logger.Error("could not open port", "port", port, "available", midi.OutPorts())
		return err
	}
	defer closePort()

	player := midi.NewPlayer(send)
	player.Logger = logger
	return player.Play(ctx, steps)
}
