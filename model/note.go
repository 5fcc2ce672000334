package model

// NoteEvent is one pitched position of an expanded sequence. Duration is in
// the same relative unit as the pattern durations.
type NoteEvent struct {
	Pitch    int `json:"pitch"`
	Duration int `json:"duration"`
}

type NamedNote struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

type Progression struct {
	Name   string   `json:"name" yaml:"name"`
	Chords []string `json:"chords" yaml:"chords"`
}
