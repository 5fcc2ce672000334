package sequence

import (
	"errors"
	"sync"
	"testing"

	"github.com/jsphweid/chordseq/chord"
	"github.com/jsphweid/chordseq/model"
	"github.com/jsphweid/chordseq/pattern"
	"github.com/jsphweid/chordseq/pitch"
	"github.com/jsphweid/chordseq/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToner struct {
	tones map[string][]string
	err   error
	calls []string
}

func (f *fakeToner) Tones(symbol string, octave int) ([]string, error) {
	f.calls = append(f.calls, symbol)
	if f.err != nil {
		return nil, f.err
	}
	return f.tones[symbol], nil
}

type fakeResolver struct {
	numbers map[string]int
	err     error
}

func (f fakeResolver) NameToNumber(name string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.numbers[name], nil
}

func mustTimeline(t *testing.T, chords []string, bars int) timeline.Timeline {
	tl, err := timeline.New(chords, bars)
	require.NoError(t, err)
	return tl
}

func mustPreset(t *testing.T, steps, durations string) pattern.Template {
	tmpl, err := pattern.FromPreset(pattern.CommonTime, steps, durations)
	require.NoError(t, err)
	return tmpl
}

func pitches(events []model.NoteEvent) []int {
	var res []int
	for _, e := range events {
		res = append(res, e.Pitch)
	}
	return res
}

func TestExpandTwoFiveOne(t *testing.T) {
	tl := mustTimeline(t, []string{"Dm7", "G7", "CM7", "CM7"}, 4)
	tmpl := mustPreset(t, "one-five", "sustain")

	events, err := Default().Expand(tl, tmpl, 8)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(events, 32)
	assert.Equal(8, Repetitions(4, 8, tmpl.Len()))

	assert.Equal([]int{38, 45, 50, 45}, pitches(events[0:4]))
	assert.Equal([]int{43, 50, 55, 50}, pitches(events[8:12]))
	assert.Equal([]int{36, 43, 48, 43}, pitches(events[16:20]))
	assert.Equal(pitches(events[16:24]), pitches(events[24:32]))

	for i, evt := range events {
		assert.Equal([]int{4, 3, 2, 1}[i%4], evt.Duration, "duration at %d", i)
	}
}

func TestEveryPitchBelongsToGoverningChord(t *testing.T) {
	chords := []string{"Dm7", "G7", "CM7", "CM7"}
	tl := mustTimeline(t, chords, 4)
	tmpl := mustPreset(t, "one-five", "sustain")

	events, err := Default().Expand(tl, tmpl, 8)
	require.NoError(t, err)

	for i, evt := range events {
		symbol := chords[i/8]
		tones, err := chord.Tones(symbol, ReferenceOctave)
		require.NoError(t, err)

		classes := map[int]bool{}
		for _, name := range tones {
			n, err := pitch.NameToNumber(name)
			require.NoError(t, err)
			classes[n%12] = true
		}
		assert.True(t, classes[evt.Pitch%12], "event %d pitch %d not in %s", i, evt.Pitch, symbol)
	}
}

func TestOutputLength(t *testing.T) {
	cases := []struct {
		bars, subdivision, expected int
	}{
		{4, 8, 32},
		{1, 8, 8},
		{5, 2, 8},
		{1, 10, 8},
		{3, 3, 8},
		{2, 1, 0},
	}
	tmpl := mustPreset(t, "arpeggio", "stacato")

	for _, c := range cases {
		tl := mustTimeline(t, []string{"C"}, c.bars)
		events, err := Default().Expand(tl, tmpl, c.subdivision)
		require.NoError(t, err)
		assert.Len(t, events, c.expected, "bars=%d subdivision=%d", c.bars, c.subdivision)
		assert.Equal(t, c.expected, Repetitions(c.bars, c.subdivision, tmpl.Len())*tmpl.Len())
	}
}

func TestTruncationDropsRemainderSlots(t *testing.T) {
	tl := mustTimeline(t, []string{"C"}, 5)
	tmpl := mustPreset(t, "arpeggio", "stacato")

	assert.Equal(t, 2, Repetitions(5, 2, tmpl.Len()))

	events, err := Default().Expand(tl, tmpl, 2)
	require.NoError(t, err)
	assert.Len(t, events, 8)
}

func TestZeroRepetitionsIsEmpty(t *testing.T) {
	tl := mustTimeline(t, []string{"C", "G"}, 1)
	events, err := Default().Expand(tl, mustPreset(t, "arpeggio", "stacato"), 2)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestOctaveWraparound(t *testing.T) {
	toner := &fakeToner{tones: map[string][]string{"X": {"r", "t", "f"}}}
	resolver := fakeResolver{numbers: map[string]int{"r": 50, "t": 54, "f": 57}}

	tmpl, err := pattern.New(pattern.CommonTime, []int{0, 12, 3, 4, 25, -1}, []int{1, 1, 1, 1, 1, 1})
	require.NoError(t, err)

	events, err := NewExpander(toner, resolver).Expand(mustTimeline(t, []string{"X"}, 1), tmpl, 6)
	require.NoError(t, err)

	// 3 and 4 wrap onto a triad, 25 is two octaves up plus one tone,
	// -1 is the top of the octave below wrapped into range.
	assert.Equal(t, []int{50, 62, 50, 54, 78, 57 - 12}, pitches(events))
}

func TestBlockAssignment(t *testing.T) {
	toner := &fakeToner{tones: map[string][]string{"A": {"a"}, "B": {"b"}}}
	resolver := fakeResolver{numbers: map[string]int{"a": 1, "b": 2}}

	events, err := NewExpander(toner, resolver).Expand(
		mustTimeline(t, []string{"A", "B"}, 2), mustPreset(t, "arpeggio", "stacato"), 4)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1, 1, 1, 2, 2, 2, 2}, pitches(events))
}

func TestUnevenBlocksRunPastTimeline(t *testing.T) {
	toner := &fakeToner{tones: map[string][]string{"A": {"a"}, "B": {"b"}, "C": {"c"}}}
	resolver := fakeResolver{numbers: map[string]int{"a": 1, "b": 2, "c": 3}}

	events, err := NewExpander(toner, resolver).Expand(
		mustTimeline(t, []string{"A", "B", "C"}, 2), mustPreset(t, "arpeggio", "stacato"), 4)
	assert.ErrorIs(t, err, timeline.ErrIndexOutOfRange)
	assert.Nil(t, events)

	_, err = Default().Expand(
		mustTimeline(t, []string{"Dm7", "G7", "CM7"}, 2), mustPreset(t, "arpeggio", "stacato"), 4)
	assert.ErrorIs(t, err, timeline.ErrIndexOutOfRange)
}

func TestChordIndexAt(t *testing.T) {
	var got []int
	for i := 0; i < 10; i++ {
		got = append(got, ChordIndexAt(i, 10, 3))
	}
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 3}, got)
}

func TestTonesFetchedOncePerSymbol(t *testing.T) {
	toner := &fakeToner{tones: map[string][]string{"A": {"a"}, "B": {"b"}}}
	resolver := fakeResolver{numbers: map[string]int{"a": 1, "b": 2}}

	_, err := NewExpander(toner, resolver).Expand(
		mustTimeline(t, []string{"A", "B", "A"}, 3), mustPreset(t, "arpeggio", "stacato"), 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, toner.calls)
}

func TestDeterministic(t *testing.T) {
	tl := mustTimeline(t, []string{"CM7", "G7", "Am7", "Em7", "FM7", "CM7", "FM7", "G7"}, 8)
	tmpl := mustPreset(t, "one-three-seven", "sustain")

	first, err := Default().Expand(tl, tmpl, 8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]model.NoteEvent, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Default().Expand(tl, tmpl, 8)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

func TestExpandErrors(t *testing.T) {
	e := Default()
	tmpl := mustPreset(t, "arpeggio", "stacato")
	tl := mustTimeline(t, []string{"C"}, 1)

	_, err := e.Expand(timeline.Timeline{}, tmpl, 8)
	assert.ErrorIs(t, err, timeline.ErrEmptyTimeline)

	_, err = e.Expand(tl, pattern.Template{}, 8)
	assert.ErrorIs(t, err, pattern.ErrDegenerateTemplate)

	_, err = e.Expand(tl, tmpl, 0)
	assert.ErrorIs(t, err, ErrInvalidSubdivision)

	_, err = e.Expand(mustTimeline(t, []string{"C", "F", "G", "Am", "Em"}, 1), tmpl, 4)
	assert.ErrorIs(t, err, ErrTooFewSlots)

	_, err = e.Expand(mustTimeline(t, []string{"Cwhat"}, 1), tmpl, 8)
	assert.ErrorIs(t, err, chord.ErrUnknownQuality)
}

func TestCollaboratorErrorsPassThrough(t *testing.T) {
	tonerErr := errors.New("toner broke")
	resolverErr := errors.New("resolver broke")
	tl := mustTimeline(t, []string{"A"}, 1)
	tmpl := mustPreset(t, "arpeggio", "stacato")

	_, err := NewExpander(&fakeToner{err: tonerErr}, fakeResolver{}).Expand(tl, tmpl, 4)
	assert.Equal(t, tonerErr, err)

	toner := &fakeToner{tones: map[string][]string{"A": {"a"}}}
	_, err = NewExpander(toner, fakeResolver{err: resolverErr}).Expand(tl, tmpl, 4)
	assert.Equal(t, resolverErr, err)

	_, err = NewExpander(&fakeToner{tones: map[string][]string{}}, fakeResolver{}).Expand(tl, tmpl, 4)
	assert.ErrorIs(t, err, ErrNoChordTones)
}

func TestExpandDoesNotMutateInputs(t *testing.T) {
	tl := mustTimeline(t, []string{"Dm7", "G7"}, 2)
	tmpl := mustPreset(t, "one-five", "sustain")

	_, err := Default().Expand(tl, tmpl, 8)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dm7", "G7"}, tl.Chords())
	assert.Equal(t, []int{0, 2, 12, 2}, tmpl.Steps())
}

func TestRender(t *testing.T) {
	named, err := Render([]model.NoteEvent{{Pitch: 38, Duration: 4}, {Pitch: 61, Duration: 1}}, pitch.Converter{})
	require.NoError(t, err)
	assert.Equal(t, []model.NamedNote{{Name: "D2", Duration: 4}, {Name: "C#4", Duration: 1}}, named)

	_, err = Render([]model.NoteEvent{{Pitch: -3}}, pitch.Converter{})
	assert.ErrorIs(t, err, pitch.ErrInvalidNumber)
}
