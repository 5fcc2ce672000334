package pitch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidName   = errors.New("invalid pitch name")
	ErrInvalidNumber = errors.New("invalid pitch number")
)

var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Converter is the zero-size default implementation of the pitch collaborator.
type Converter struct{}

func (Converter) NameToNumber(name string) (int, error) { return NameToNumber(name) }

func (Converter) NumberToName(n int) (string, error) { return NumberToName(n) }

// NameToNumber converts names like "C4", "F#3", "Bb-1" to MIDI note numbers,
// with C4 = 60. The result is not clamped to 0-127.
func NameToNumber(name string) (int, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	semitone, ok := letterOffsets[strings.ToUpper(name[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: bad letter in %q", ErrInvalidName, name)
	}

	idx := 1
	for idx < len(name) && (name[idx] == '#' || name[idx] == 'b') {
		switch name[idx] {
		case '#':
			semitone++
		default:
			semitone--
		}
		idx++
	}

	if idx >= len(name) {
		return 0, fmt.Errorf("%w: missing octave in %q", ErrInvalidName, name)
	}
	octave, err := strconv.Atoi(name[idx:])
	if err != nil {
		return 0, fmt.Errorf("%w: bad octave in %q", ErrInvalidName, name)
	}

	return (octave+1)*12 + semitone, nil
}

// NumberToName is the inverse of NameToNumber, spelling accidentals as sharps.
func NumberToName(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidNumber, n)
	}
	return sharpNames[n%12] + strconv.Itoa(n/12-1), nil
}
