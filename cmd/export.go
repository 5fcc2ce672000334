package cmd

import (
	"github.com/jsphweid/chordseq/constants"
	"github.com/jsphweid/chordseq/logger"
	"github.com/jsphweid/chordseq/midi"
	"github.com/jsphweid/chordseq/sequence"
	"github.com/spf13/cobra"
)

var (
	exportSel      selection
	exportOut      string
	exportTempo    float64
	exportVelocity uint8
	exportChannel  uint8
)

func init() {
	exportSel.addFlags(exportCmd)
	f := exportCmd.Flags()
	f.StringVarP(&exportOut, "out", "o", "out.mid", "midi file to write")
	f.Float64Var(&exportTempo, "tempo", 0, "tempo in bpm (defaults to CHORDSEQ_TEMPO or 120)")
	f.Uint8Var(&exportVelocity, "velocity", 100, "note velocity")
	f.Uint8Var(&exportChannel, "channel", 0, "midi channel")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes an expanded progression to a midi file",
	Long:  `Writes an expanded progression to a standard midi file, one slot per event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tempo := exportTempo
		if tempo <= 0 {
			tempo = constants.GetTempo()
		}
		return export(exportSel, exportOut, tempo, exportVelocity, exportChannel)
	},
}

func export(sel selection, out string, tempo float64, velocity, channel uint8) error {
	tl, tmpl, err := sel.build()
	if err != nil {
		return err
	}
	events, err := sequence.Default().Expand(tl, tmpl, sel.subdivision)
	if err != nil {
		return err
	}

	meter := tmpl.Meter()
	opts := midi.Options{
		Subdivision: sel.subdivision,
		BeatsPerBar: meter.BeatsPerBar,
		BeatUnit:    meter.BeatUnit,
		Tempo:       tempo,
		Velocity:    velocity,
		Channel:     channel,
	}
	if err := midi.WriteMidiFile(out, events, opts); err != nil {
		return err
	}

	logger.Info("Wrote midi file", logger.Fields{
		"path":   out,
		"events": len(events),
		"tempo":  tempo,
	})
	return nil
}
