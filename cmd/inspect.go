package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/midi"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects an exported MIDI file",
	Long:  `Prints the tempo and every note event of a MIDI file, e.g. one written by lead.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func noteName(key uint8) string {
	return fmt.Sprintf("%s%d", chord.ChromaticScale[key%12], int(key)/12-1)
}

func inspect(path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("tempo: %v bpm\n", midi.Tempo(s))
	fmt.Printf("tracks: %d\n", len(s.Tracks))
	for _, evt := range midi.NoteEvents(s) {
		kind := "off"
		if evt.On {
			kind = "on "
		}
		fmt.Printf("%6d  %s  %3d %-4s vel %d\n", evt.AbsTicks, kind, evt.Key, noteName(evt.Key), evt.Velocity)
	}
	return nil
}
