package model

// NoChannel marks a note that carries no per-note channel tag.
const NoChannel int8 = -1

// Note is one note event as it moves through the pipeline: generated,
// encoded onto the wire, decoded on the receiving side, recorded.
// Length and Position are in beats and only meaningful at 0.1-beat
// resolution: the wire format carries one decimal digit, so anything
// finer is lost in a round trip.
type Note struct {
	Pitch    uint8
	Velocity uint8
	Length   float64
	Position float64

	// Channel is only used by the 7-symbol tagged wire variant and by
	// multi-channel recording. NoChannel (-1) means untagged.
	Channel int8
}

// Batch is an ordered sequence of notes, e.g. one completed receive
// session. Treated as immutable once built.
type Batch = []Note

// Tagged reports whether the note carries a channel tag.
func (n Note) Tagged() bool {
	return n.Channel >= 0
}

// ChannelOr returns the note's channel tag, or fallback if untagged.
func (n Note) ChannelOr(fallback uint8) uint8 {
	if n.Channel >= 0 {
		return uint8(n.Channel)
	}
	return fallback
}
