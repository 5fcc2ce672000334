package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsphweid/chordseq/logger"
	"github.com/jsphweid/chordseq/model"
	"github.com/jsphweid/chordseq/pitch"
	"github.com/jsphweid/chordseq/sequence"
	"github.com/spf13/cobra"
)

var (
	expandSel   selection
	expandNames bool
	expandJSON  bool
)

func init() {
	expandSel.addFlags(expandCmd)
	expandCmd.Flags().BoolVarP(&expandNames, "names", "n", false, "print pitch names instead of numbers")
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "print JSON")
	rootCmd.AddCommand(expandCmd)
}

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Expands a progression into note events",
	Long:  `Expands a progression into (pitch, duration) note events and prints them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return expand(cmd.OutOrStdout(), expandSel, expandNames, expandJSON)
	},
}

func expand(w io.Writer, sel selection, withNames bool, asJSON bool) error {
	tl, tmpl, err := sel.build()
	if err != nil {
		return err
	}

	events, err := sequence.Default().Expand(tl, tmpl, sel.subdivision)
	if err != nil {
		return err
	}
	logger.Debug("Expanded sequence", logger.Fields{
		"chords": tl.ChordCount(),
		"bars":   tl.BarCount(),
		"events": len(events),
	})

	var named []model.NamedNote
	if withNames {
		named, err = sequence.Render(events, pitch.Converter{})
		if err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		if withNames {
			return enc.Encode(named)
		}
		return enc.Encode(events)
	}

	fmt.Fprintln(w, describe(tl, tmpl, sel.subdivision))
	for i, evt := range events {
		if withNames {
			fmt.Fprintf(w, "%d\t%s\t%d\n", i, named[i].Name, named[i].Duration)
		} else {
			fmt.Fprintf(w, "%d\t%d\t%d\n", i, evt.Pitch, evt.Duration)
		}
	}
	return nil
}
