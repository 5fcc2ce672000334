package sequence

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordseq/chord"
	"github.com/jsphweid/chordseq/model"
	"github.com/jsphweid/chordseq/pattern"
	"github.com/jsphweid/chordseq/pitch"
	"github.com/jsphweid/chordseq/timeline"
	"github.com/jsphweid/chordseq/util"
)

// ReferenceOctave anchors every chord's tones before step offsets apply.
const ReferenceOctave = 2

// DefaultSubdivision is the number of slots per bar when none is given.
const DefaultSubdivision = 8

var (
	ErrInvalidSubdivision = errors.New("subdivision must be positive")
	ErrTooFewSlots        = errors.New("fewer pattern slots than chords")
	ErrNoChordTones       = errors.New("chord has no tones")
)

// ChordToner derives the ordered tones of a chord symbol, root first.
type ChordToner interface {
	Tones(symbol string, octave int) ([]string, error)
}

type PitchResolver interface {
	NameToNumber(name string) (int, error)
}

type PitchNamer interface {
	NumberToName(n int) (string, error)
}

// Expander turns a timeline and a pattern into note events. It holds no
// mutable state and may be shared between goroutines as long as its
// collaborators can.
type Expander struct {
	toner    ChordToner
	resolver PitchResolver
}

func NewExpander(toner ChordToner, resolver PitchResolver) *Expander {
	return &Expander{toner: toner, resolver: resolver}
}

func Default() *Expander {
	return NewExpander(chord.Toner{}, pitch.Converter{})
}

// Repetitions is how many whole copies of a pattern fit in bars*subdivision
// slots. Leftover slots are dropped.
func Repetitions(bars, subdivision, patternLen int) int {
	if patternLen <= 0 {
		return 0
	}
	return bars * subdivision / patternLen
}

// ChordIndexAt gives each chord a contiguous block of total/chordCount
// positions. Positions past the last whole block index beyond the timeline.
func ChordIndexAt(i, total, chordCount int) int {
	return i / (total / chordCount)
}

// Expand tiles the pattern over the timeline and resolves one note event per
// slot. Errors from the toner and resolver are returned unchanged.
func (e *Expander) Expand(tl timeline.Timeline, tmpl pattern.Template, subdivision int) ([]model.NoteEvent, error) {
	if subdivision < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSubdivision, subdivision)
	}
	chordCount := tl.ChordCount()
	if chordCount == 0 {
		return nil, timeline.ErrEmptyTimeline
	}
	if tmpl.Len() == 0 {
		return nil, pattern.ErrDegenerateTemplate
	}

	repetitions := Repetitions(tl.BarCount(), subdivision, tmpl.Len())
	steps := util.Repeat(tmpl.Steps(), repetitions)
	durations := util.Repeat(tmpl.Durations(), repetitions)

	res := make([]model.NoteEvent, 0, len(steps))
	if len(steps) == 0 {
		return res, nil
	}
	if len(steps) < chordCount {
		return nil, fmt.Errorf("%w: %d slots for %d chords", ErrTooFewSlots, len(steps), chordCount)
	}

	tonesBySymbol := make(map[string][]string)
	for i, step := range steps {
		symbol, err := tl.ChordAt(ChordIndexAt(i, len(steps), chordCount))
		if err != nil {
			return nil, err
		}

		tones, ok := tonesBySymbol[symbol]
		if !ok {
			tones, err = e.toner.Tones(symbol, ReferenceOctave)
			if err != nil {
				return nil, err
			}
			if len(tones) == 0 {
				return nil, fmt.Errorf("%w: %q", ErrNoChordTones, symbol)
			}
			tonesBySymbol[symbol] = tones
		}

		octaveShift, inOctave := util.FloorDivMod(step, 12)
		toneIndex := inOctave % len(tones)

		base, err := e.resolver.NameToNumber(tones[toneIndex])
		if err != nil {
			return nil, err
		}

		res = append(res, model.NoteEvent{
			Pitch:    base + octaveShift*12,
			Duration: durations[i],
		})
	}

	return res, nil
}

// Render pairs each event's pitch name with its duration for display.
func Render(events []model.NoteEvent, namer PitchNamer) ([]model.NamedNote, error) {
	res := make([]model.NamedNote, 0, len(events))
	for _, evt := range events {
		name, err := namer.NumberToName(evt.Pitch)
		if err != nil {
			return nil, err
		}
		res = append(res, model.NamedNote{Name: name, Duration: evt.Duration})
	}
	return res, nil
}
