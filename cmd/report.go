package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordseq/sequence"
	"github.com/jsphweid/chordseq/util"
	"github.com/spf13/cobra"
)

var reportSel selection

func init() {
	reportSel.addFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports how a progression fills its slots",
	Long:  `Reports slot usage, dropped slots and events per chord for an expansion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd.OutOrStdout(), reportSel)
	},
}

type expansionReport struct {
	totalSlots     int
	repetitions    int
	droppedSlots   int
	numEvents      int
	totalDuration  int64
	eventsPerChord []int
}

func analyzeExpansion(sel selection) (expansionReport, error) {
	var r expansionReport

	tl, tmpl, err := sel.build()
	if err != nil {
		return r, err
	}
	events, err := sequence.Default().Expand(tl, tmpl, sel.subdivision)
	if err != nil {
		return r, err
	}

	r.totalSlots = tl.BarCount() * sel.subdivision
	r.repetitions = sequence.Repetitions(tl.BarCount(), sel.subdivision, tmpl.Len())
	r.numEvents = len(events)
	r.droppedSlots = r.totalSlots - r.numEvents

	durations := make([]int, 0, len(events))
	for _, evt := range events {
		durations = append(durations, evt.Duration)
	}
	r.totalDuration = util.Sum(durations)

	r.eventsPerChord = make([]int, tl.ChordCount())
	for i := 0; i < r.numEvents; i++ {
		r.eventsPerChord[sequence.ChordIndexAt(i, r.numEvents, tl.ChordCount())]++
	}
	return r, nil
}

func report(w io.Writer, sel selection) error {
	r, err := analyzeExpansion(sel)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "totalSlots: %v\n", r.totalSlots)
	fmt.Fprintf(w, "repetitions: %v\n", r.repetitions)
	fmt.Fprintf(w, "droppedSlots: %v\n", r.droppedSlots)
	fmt.Fprintf(w, "numEvents: %v\n", r.numEvents)
	fmt.Fprintf(w, "totalDuration: %v\n", r.totalDuration)
	fmt.Fprintf(w, "eventsPerChord: %v\n", r.eventsPerChord)
	return nil
}
