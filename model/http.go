package model

type ExpandRequestBody struct {
	Chords      []string `json:"chords"`
	Progression *int     `json:"progression,omitempty"`
	Bars        int      `json:"bars"`
	Pattern     string   `json:"pattern"`
	Durations   string   `json:"durations"`
	Subdivision int      `json:"subdivision"`
	WithNames   bool     `json:"with_names"`
}

type ExpandResponse struct {
	RequestId string      `json:"request_id"`
	Chords    []string    `json:"chords"`
	Events    []NoteEvent `json:"events"`
	Names     []NamedNote `json:"names,omitempty"`
}

type PresetsResponse struct {
	Patterns  []string `json:"patterns"`
	Durations []string `json:"durations"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
