package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordseq/constants"
	"github.com/jsphweid/chordseq/progression"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressionsCmd)
}

var progressionsCmd = &cobra.Command{
	Use:   "progressions",
	Short: "Lists the progression catalog",
	Long:  `Lists the progression catalog, read from PROGRESSIONS_PATH when set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := progression.Load(constants.GetProgressionsPath())
		if err != nil {
			return err
		}
		listProgressions(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func listProgressions(w io.Writer, catalog *progression.Catalog) {
	for i, p := range catalog.Progressions {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, p.Name, strings.Join(p.Chords, " "))
	}
}
