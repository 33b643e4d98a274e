package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/util"
)

func init() {
	rootCmd.AddCommand(standardsCmd)
}

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Lists the bundled progressions",
	Long:  `Lists the bundled progressions that lead --standard accepts.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range standards() {
			marker := " "
			if s.Name == constants.DefaultStandard {
				marker = "*"
			}
			fmt.Printf("%s %s %s\n", marker, styleChord.Render(s.Name), styleDim.Render(fmt.Sprintf("(%d chords)", len(s.Chords))))
			fmt.Printf("    %s\n", strings.Join(s.Chords, " "))
		}
	},
}

// standards returns the bundled progressions sorted by name.
func standards() []model.Standard {
	names := util.GetSortedKeys(constants.Standards)
	res := make([]model.Standard, 0, len(names))
	for _, name := range names {
		chords, _ := constants.GetStandard(name)
		res = append(res, model.Standard{Name: name, Chords: chords})
	}
	return res
}
