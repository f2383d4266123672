package recorder

// Transport is the host surface the recorder drives. It is deliberately
// minimal: the host only supports moving the playhead, toggling record,
// start/stop, and sounding a pitch. Implementations live elsewhere
// (midiport has a MIDI remote-control one; tests use a fake).
type Transport interface {
	// MovePlayhead positions the song pointer at an absolute tick.
	MovePlayhead(tick int) error
	IsPlaying() bool
	Start() error
	Stop() error
	IsRecording() bool
	// ToggleRecord flips record arming; there is no absolute setter.
	ToggleRecord() error
	NoteOn(channel, pitch, velocity uint8) error
	NoteOff(channel, pitch uint8) error
	// CurrentTempoBPM reports the host tempo, false if unknown.
	CurrentTempoBPM() (float64, bool)
	// TicksPerBeat is the host's pulses-per-quarter-note resolution.
	TicksPerBeat() uint32
}
