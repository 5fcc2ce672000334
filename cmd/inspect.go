package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordseq/midi"
	"github.com/jsphweid/chordseq/pitch"
	"github.com/jsphweid/chordseq/sequence"
	"github.com/spf13/cobra"
)

var inspectSubdivision int

func init() {
	inspectCmd.Flags().IntVarP(&inspectSubdivision, "subdivision", "s", sequence.DefaultSubdivision, "slots per bar the file was exported with")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects an exported midi file",
	Long:  `Reads a midi file written by export and prints its note events.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0], inspectSubdivision)
	},
}

func inspect(w io.Writer, path string, subdivision int) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	opts := midi.DefaultOptions()
	opts.Subdivision = subdivision
	events, err := midi.Decode(s, opts)
	if err != nil {
		return err
	}

	named, err := sequence.Render(events, pitch.Converter{})
	if err != nil {
		return err
	}
	for i, n := range named {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", i, n.Name, events[i].Pitch, n.Duration)
	}
	return nil
}
