package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/chordseq/model"
	"github.com/jsphweid/chordseq/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerQuarter = 960

var (
	ErrPitchOutOfRange = errors.New("pitch outside midi range")
	ErrBadGrid         = errors.New("subdivision does not fit the tick resolution")
	ErrBadDuration     = errors.New("duration must be positive")
)

// Options describe how slots map to time. Subdivision is slots per bar, the
// same value the sequence was expanded with.
type Options struct {
	Subdivision int
	BeatsPerBar int
	BeatUnit    int
	Tempo       float64
	Velocity    uint8
	Channel     uint8
}

func DefaultOptions() Options {
	return Options{
		Subdivision: 8,
		BeatsPerBar: 4,
		BeatUnit:    4,
		Tempo:       120,
		Velocity:    100,
	}
}

func (o Options) slotTicks(ticksPerQuarter uint32) (uint32, error) {
	if o.Subdivision < 1 || o.BeatsPerBar < 1 || o.BeatUnit < 1 {
		return 0, fmt.Errorf("%w: %+v", ErrBadGrid, o)
	}
	bar := uint32(o.BeatsPerBar) * ticksPerQuarter * 4 / uint32(o.BeatUnit)
	slot := bar / uint32(o.Subdivision)
	if slot == 0 {
		return 0, fmt.Errorf("%w: %d slots per bar", ErrBadGrid, o.Subdivision)
	}
	return slot, nil
}

type timedMessage struct {
	tick uint32
	off  bool
	key  uint8
}

// Encode lays event i out at slot i. A note is cut short when the same key
// is struck again before it ends.
func Encode(events []model.NoteEvent, opts Options) (*smf.SMF, error) {
	slot, err := opts.slotTicks(TicksPerQuarter)
	if err != nil {
		return nil, err
	}

	var msgs []timedMessage
	for i, evt := range events {
		if evt.Pitch < 0 || evt.Pitch > 127 {
			return nil, fmt.Errorf("%w: %d at event %d", ErrPitchOutOfRange, evt.Pitch, i)
		}
		if evt.Duration < 1 {
			return nil, fmt.Errorf("%w: %d at event %d", ErrBadDuration, evt.Duration, i)
		}
		start := uint32(i) * slot
		end := start + uint32(evt.Duration)*slot
		for j := i + 1; j < len(events); j++ {
			if events[j].Pitch == evt.Pitch {
				end = util.Min(end, uint32(j)*slot)
				break
			}
		}
		key := uint8(evt.Pitch)
		msgs = append(msgs,
			timedMessage{tick: start, key: key},
			timedMessage{tick: end, off: true, key: key})
	}

	// note offs go first so a re-struck key is released before it sounds again
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(uint8(opts.BeatsPerBar), uint8(opts.BeatUnit)))
	tr.Add(0, smf.MetaTempo(opts.Tempo))

	var last uint32
	for _, m := range msgs {
		delta := m.tick - last
		last = m.tick
		if m.off {
			tr.Add(delta, gomidi.NoteOff(opts.Channel, m.key))
		} else {
			tr.Add(delta, gomidi.NoteOn(opts.Channel, m.key, opts.Velocity))
		}
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(tr); err != nil {
		return nil, err
	}
	return s, nil
}

type sounding struct {
	start uint32
	order int
}

type decodedNote struct {
	start    uint32
	order    int
	pitch    int
	duration uint32
}

// Decode rebuilds note events from note on/off pairs, ordered by onset.
// Durations are rounded down to whole slots.
func Decode(s *smf.SMF, opts Options) ([]model.NoteEvent, error) {
	tpq := uint32(TicksPerQuarter)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		tpq = uint32(mt)
	}
	slot, err := opts.slotTicks(tpq)
	if err != nil {
		return nil, err
	}

	var notes []decodedNote
	var order int
	for _, events := range s.Tracks {
		var absTicks uint32
		pressed := make(map[uint8]sounding)
		for _, event := range events {
			absTicks += event.Delta
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				pressed[key] = sounding{start: absTicks, order: order}
				order++
			case event.Message.GetNoteOn(&channel, &key, &velocity),
				event.Message.GetNoteOff(&channel, &key, &velocity):
				on, ok := pressed[key]
				if !ok {
					continue
				}
				delete(pressed, key)
				notes = append(notes, decodedNote{
					start:    on.start,
					order:    on.order,
					pitch:    int(key),
					duration: absTicks - on.start,
				})
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].start != notes[j].start {
			return notes[i].start < notes[j].start
		}
		return notes[i].order < notes[j].order
	})

	res := make([]model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		res = append(res, model.NoteEvent{Pitch: n.pitch, Duration: int(n.duration / slot)})
	}
	return res, nil
}

func WriteMidiFile(filepath string, events []model.NoteEvent, opts Options) error {
	s, err := Encode(events, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return fmt.Errorf("Error encoding midi file... %w", err)
	}
	if err := os.WriteFile(filepath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("Error writing midi file... %w", err)
	}
	return nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s = nil
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("Error parsing midi file... %w", err)
	}

	return res, nil
}
