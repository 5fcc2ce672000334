package pattern

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordseq/util"
)

var (
	ErrInvalidPresetKind  = errors.New("invalid preset kind")
	ErrUnsupportedMeter   = errors.New("unsupported meter")
	ErrDegenerateTemplate = errors.New("degenerate pattern template")
)

const (
	DefaultSteps     = "one-five"
	DefaultDurations = "sustain"
)

// Meter is a time signature, e.g. {4, 4}.
type Meter struct {
	BeatsPerBar int
	BeatUnit    int
}

var CommonTime = Meter{BeatsPerBar: 4, BeatUnit: 4}

func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.BeatsPerBar, m.BeatUnit)
}

// Step offsets index into a chord's tones; 12 and above add octaves.
// The presets are only defined for 4/4.
var stepPresets = map[string][]int{
	"one-five":        {0, 2, 0 + 12, 2},
	"one-five-seven":  {0, 2, 3, 2},
	"one-three":       {0, 1, 0 + 12, 1},
	"one-three-seven": {0, 1, 3, 1},
	"arpeggio":        {0, 1, 2, 3},
}

var durationPresets = map[string][]int{
	"stacato": {1, 1, 1, 1},
	"sustain": {4, 3, 2, 1},
}

// Template is an immutable rhythmic/interval shape.
type Template struct {
	steps     []int
	durations []int
	meter     Meter
}

// New builds a template from explicit arrays, copying both.
func New(meter Meter, steps []int, durations []int) (Template, error) {
	var t Template
	if meter.BeatsPerBar <= 0 || meter.BeatUnit <= 0 {
		return t, fmt.Errorf("%w: %v", ErrUnsupportedMeter, meter)
	}
	if len(steps) == 0 {
		return t, fmt.Errorf("%w: no steps", ErrDegenerateTemplate)
	}
	if len(steps) != len(durations) {
		return t, fmt.Errorf("%w: %d steps but %d durations", ErrDegenerateTemplate, len(steps), len(durations))
	}
	for i, d := range durations {
		if d <= 0 {
			return t, fmt.Errorf("%w: duration %d at step %d", ErrDegenerateTemplate, d, i)
		}
	}

	t.steps = append([]int(nil), steps...)
	t.durations = append([]int(nil), durations...)
	t.meter = meter
	return t, nil
}

// FromPreset looks up the named step and duration presets.
func FromPreset(meter Meter, stepKind string, durationKind string) (Template, error) {
	if meter != CommonTime {
		return Template{}, fmt.Errorf("%w: presets are defined for %v, got %v", ErrUnsupportedMeter, CommonTime, meter)
	}
	steps, ok := stepPresets[stepKind]
	if !ok {
		return Template{}, fmt.Errorf("%w: step preset %q", ErrInvalidPresetKind, stepKind)
	}
	durations, ok := durationPresets[durationKind]
	if !ok {
		return Template{}, fmt.Errorf("%w: duration preset %q", ErrInvalidPresetKind, durationKind)
	}
	return New(meter, steps, durations)
}

func Default() Template {
	t, err := FromPreset(CommonTime, DefaultSteps, DefaultDurations)
	if err != nil {
		panic("default presets are broken: " + err.Error())
	}
	return t
}

func StepKinds() []string {
	return util.GetKeys(stepPresets)
}

func DurationKinds() []string {
	return util.GetKeys(durationPresets)
}

func (t Template) Steps() []int {
	return append([]int(nil), t.steps...)
}

func (t Template) Durations() []int {
	return append([]int(nil), t.durations...)
}

func (t Template) Meter() Meter {
	return t.meter
}

func (t Template) Len() int {
	return len(t.steps)
}
