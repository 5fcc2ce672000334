package cmd

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jsphweid/chordseq/constants"
	"github.com/jsphweid/chordseq/pattern"
	"github.com/jsphweid/chordseq/progression"
	"github.com/jsphweid/chordseq/sequence"
	"github.com/jsphweid/chordseq/timeline"
	"github.com/spf13/cobra"
)

// selection holds the flags shared by every command that expands a sequence.
type selection struct {
	chords      string
	progression int
	random      bool
	seed        int64
	bars        int
	pattern     string
	durations   string
	subdivision int
}

func (s *selection) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&s.chords, "chords", "c", "", "comma separated chord symbols, e.g. Dm7,G7,CM7,CM7")
	f.IntVarP(&s.progression, "progression", "p", 0, "index into the progression catalog")
	f.BoolVar(&s.random, "random", false, "pick a random progression from the catalog")
	f.Int64Var(&s.seed, "seed", 0, "seed for --random (0 uses the clock)")
	f.IntVarP(&s.bars, "bars", "b", 0, "bars the progression spans (defaults to one per chord)")
	f.StringVar(&s.pattern, "pattern", pattern.DefaultSteps,
		"step preset: "+strings.Join(pattern.StepKinds(), ", "))
	f.StringVar(&s.durations, "durations", pattern.DefaultDurations,
		"duration preset: "+strings.Join(pattern.DurationKinds(), ", "))
	f.IntVarP(&s.subdivision, "subdivision", "s", sequence.DefaultSubdivision, "pattern slots per bar")
}

func (s *selection) resolveChords() ([]string, error) {
	if s.chords != "" {
		var res []string
		for _, c := range strings.Split(s.chords, ",") {
			if c = strings.TrimSpace(c); c != "" {
				res = append(res, c)
			}
		}
		return res, nil
	}

	catalog, err := progression.Load(constants.GetProgressionsPath())
	if err != nil {
		return nil, err
	}
	if s.random {
		seed := s.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		_, p := catalog.Pick(rand.New(rand.NewSource(seed)))
		return p.Chords, nil
	}
	p, err := catalog.Get(s.progression)
	if err != nil {
		return nil, err
	}
	return p.Chords, nil
}

func (s *selection) build() (timeline.Timeline, pattern.Template, error) {
	chords, err := s.resolveChords()
	if err != nil {
		return timeline.Timeline{}, pattern.Template{}, err
	}

	bars := s.bars
	if bars == 0 {
		bars = len(chords)
	}
	tl, err := timeline.New(chords, bars)
	if err != nil {
		return timeline.Timeline{}, pattern.Template{}, err
	}

	tmpl, err := pattern.FromPreset(pattern.CommonTime, s.pattern, s.durations)
	if err != nil {
		return timeline.Timeline{}, pattern.Template{}, err
	}
	return tl, tmpl, nil
}

func describe(tl timeline.Timeline, tmpl pattern.Template, subdivision int) string {
	return fmt.Sprintf("%s over %d bars, %d slots per bar, %v", strings.Join(tl.Chords(), " "),
		tl.BarCount(), subdivision, tmpl.Meter())
}
