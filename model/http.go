package model

// NoteJSON is the over-HTTP shape of a Note. Channel is a pointer so
// clients can omit it for untagged notes.
type NoteJSON struct {
	Pitch    uint8   `json:"pitch"`
	Velocity uint8   `json:"velocity"`
	Length   float64 `json:"length"`
	Position float64 `json:"position"`
	Channel  *uint8  `json:"channel,omitempty"`
}

type PlayRequestBody struct {
	Notes []NoteJSON `json:"notes"`
}

type PlayResponse struct {
	Sent      int  `json:"sent"`
	Truncated bool `json:"truncated"`
}

type GenerateRequestBody struct {
	Root        uint8   `json:"root,omitempty"`
	Scale       string  `json:"scale,omitempty"`
	Progression string  `json:"progression,omitempty"`
	Complexity  float64 `json:"complexity,omitempty"`
	Measures    int     `json:"measures,omitempty"`
	Send        bool    `json:"send,omitempty"`
}

type GenerateResponse struct {
	Solo    []NoteJSON `json:"solo"`
	Comping []NoteJSON `json:"comping"`
}

type SimilarRequestBody struct {
	Notes []uint8 `json:"notes"`
	TopK  int     `json:"top_k,omitempty"`
}

type SimilarMatch struct {
	Filename     string        `json:"filename"`
	Score        float64       `json:"score"`
	LickMetadata *LickMetadata `json:"lick_metadata,omitempty"`
}

type SimilarResponse struct {
	Matches []SimilarMatch `json:"matches"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

// ToNote converts the HTTP shape to the internal one.
func (n NoteJSON) ToNote() Note {
	note := Note{
		Pitch:    n.Pitch,
		Velocity: n.Velocity,
		Length:   n.Length,
		Position: n.Position,
		Channel:  NoChannel,
	}
	if n.Channel != nil {
		note.Channel = int8(*n.Channel)
	}
	return note
}

// FromNote converts an internal note to the HTTP shape.
func FromNote(n Note) NoteJSON {
	res := NoteJSON{
		Pitch:    n.Pitch,
		Velocity: n.Velocity,
		Length:   n.Length,
		Position: n.Position,
	}
	if n.Tagged() {
		ch := uint8(n.Channel)
		res.Channel = &ch
	}
	return res
}
