package chord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/chordseq/util"
)

var (
	ErrEmptySymbol    = errors.New("empty chord symbol")
	ErrInvalidRoot    = errors.New("invalid chord root")
	ErrUnknownQuality = errors.New("unknown chord quality")
)

// semitones above the root
var qualities = map[string][]int{
	"":      {0, 4, 7},
	"maj":   {0, 4, 7},
	"m":     {0, 3, 7},
	"min":   {0, 3, 7},
	"dim":   {0, 3, 6},
	"aug":   {0, 4, 8},
	"+":     {0, 4, 8},
	"sus":   {0, 5, 7},
	"sus2":  {0, 2, 7},
	"sus4":  {0, 5, 7},
	"5":     {0, 7},
	"6":     {0, 4, 7, 9},
	"m6":    {0, 3, 7, 9},
	"7":     {0, 4, 7, 10},
	"M7":    {0, 4, 7, 11},
	"maj7":  {0, 4, 7, 11},
	"m7":    {0, 3, 7, 10},
	"min7":  {0, 3, 7, 10},
	"mM7":   {0, 3, 7, 11},
	"m7b5":  {0, 3, 6, 10},
	"m7-5":  {0, 3, 6, 10},
	"dim7":  {0, 3, 6, 9},
	"aug7":  {0, 4, 8, 10},
	"7sus4": {0, 5, 7, 10},
	"9":     {0, 4, 7, 10, 14},
	"M9":    {0, 4, 7, 11, 14},
	"maj9":  {0, 4, 7, 11, 14},
	"m9":    {0, 3, 7, 10, 14},
	"add9":  {0, 4, 7, 14},
	"11":    {0, 4, 7, 10, 14, 17},
	"13":    {0, 4, 7, 10, 14, 21},
}

var (
	sharpSpelling = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatSpelling  = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

type Chord struct {
	Symbol  string
	Root    string
	Quality string
	Bass    string
}

// Parse splits a symbol such as "Dm7", "BbM7" or "C/E" into its parts.
func Parse(symbol string) (Chord, error) {
	var c Chord
	s := strings.TrimSpace(symbol)
	if s == "" {
		return c, ErrEmptySymbol
	}
	c.Symbol = s

	if i := strings.Index(s, "/"); i >= 0 {
		c.Bass = s[i+1:]
		s = s[:i]
		if _, err := noteValue(c.Bass); err != nil {
			return c, fmt.Errorf("%w: bass %q in %q", ErrInvalidRoot, c.Bass, symbol)
		}
	}

	root, rest := splitRoot(s)
	if _, err := noteValue(root); err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidRoot, symbol)
	}
	if _, ok := qualities[rest]; !ok {
		return c, fmt.Errorf("%w: %q in %q", ErrUnknownQuality, rest, symbol)
	}
	c.Root = root
	c.Quality = rest
	return c, nil
}

func splitRoot(s string) (string, string) {
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		return s[:2], s[2:]
	}
	if len(s) == 0 {
		return "", ""
	}
	return s[:1], s[1:]
}

func noteValue(note string) (int, error) {
	if note == "" {
		return 0, ErrInvalidRoot
	}
	v, ok := letterOffsets[note[0]]
	if !ok {
		return 0, ErrInvalidRoot
	}
	switch note[1:] {
	case "":
	case "#":
		v++
	case "b":
		v--
	default:
		return 0, ErrInvalidRoot
	}
	_, m := util.FloorDivMod(v, 12)
	return m, nil
}

// Components returns the chord's tones as semitone values counted from C of
// the reference octave, root first, or bass first for slash chords.
func (c Chord) Components() []int {
	rootVal, _ := noteValue(c.Root)
	intervals := qualities[c.Quality]

	var res []int
	var bassVal int
	if c.Bass != "" {
		bassVal, _ = noteValue(c.Bass)
	}
	for _, interval := range intervals {
		v := rootVal + interval
		if c.Bass != "" {
			if _, m := util.FloorDivMod(v, 12); m == bassVal {
				continue
			}
		}
		res = append(res, v)
	}

	if c.Bass != "" {
		for bassVal >= res[0] {
			bassVal -= 12
		}
		res = append([]int{bassVal}, res...)
		if res[0] < 0 {
			for i := range res {
				res[i] += 12
			}
		}
	}
	return res
}

func (c Chord) spelling() []string {
	if strings.HasSuffix(c.Root, "b") || c.Root == "F" {
		return flatSpelling
	}
	return sharpSpelling
}

// Tones returns pitch names of the chord anchored at octave, e.g. Dm7 at 2
// gives D2 F2 A2 C3.
func (c Chord) Tones(octave int) []string {
	names := c.spelling()
	components := c.Components()
	res := make([]string, 0, len(components))
	for _, v := range components {
		shift, pc := util.FloorDivMod(v, 12)
		res = append(res, names[pc]+strconv.Itoa(octave+shift))
	}
	return res
}

// Toner is the default chord-tone collaborator.
type Toner struct{}

func (Toner) Tones(symbol string, octave int) ([]string, error) {
	return Tones(symbol, octave)
}

func Tones(symbol string, octave int) ([]string, error) {
	c, err := Parse(symbol)
	if err != nil {
		return nil, err
	}
	return c.Tones(octave), nil
}

// Qualities lists the quality suffixes Parse accepts.
func Qualities() []string {
	return util.GetKeys(qualities)
}
