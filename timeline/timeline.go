package timeline

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTimeline   = errors.New("timeline has no chords")
	ErrInvalidBarCount = errors.New("bar count must be positive")
	ErrIndexOutOfRange = errors.New("chord index out of range")
)

// Timeline is an ordered chord progression spread over a number of bars.
// The bar count does not have to be a multiple of the chord count.
type Timeline struct {
	chords []string
	bars   int
}

func New(chords []string, bars int) (Timeline, error) {
	if len(chords) == 0 {
		return Timeline{}, ErrEmptyTimeline
	}
	if bars < 1 {
		return Timeline{}, fmt.Errorf("%w: %d", ErrInvalidBarCount, bars)
	}
	return Timeline{
		chords: append([]string(nil), chords...),
		bars:   bars,
	}, nil
}

func (t Timeline) ChordAt(i int) (string, error) {
	if i < 0 || i >= len(t.chords) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(t.chords))
	}
	return t.chords[i], nil
}

func (t Timeline) ChordCount() int {
	return len(t.chords)
}

func (t Timeline) BarCount() int {
	return t.bars
}

func (t Timeline) Chords() []string {
	return append([]string(nil), t.chords...)
}
