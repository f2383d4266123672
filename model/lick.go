package model

// NumPitchClasses is the length of a pitch-class histogram.
const NumPitchClasses = 12

// LickFeature is one analyzed midi file in the lick library: a
// pitch-class histogram over all of its notes plus a few coarse
// melodic-contour stats. Fixed-size so it serializes to a flat record.
type LickFeature struct {
	FileNum      uint32
	PitchClasses [NumPitchClasses]float32
	MeanPitch    float32
	PitchRange   float32
	NoteCount    uint32
}

// LickMetadata is attribution info for a library file, fetched from
// the metadata table. Not guaranteed to exist for every file.
type LickMetadata struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Year   uint   `json:"year,omitempty"`
}

type FileNumToMidiPath = map[uint32]string
