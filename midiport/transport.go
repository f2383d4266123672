package midiport

import (
	"gitlab.com/gomidi/midi/v2"
)

// MMC command frames (MIDI Machine Control, device 7F = broadcast).
var (
	mmcStop   = midi.Message{0xF0, 0x7F, 0x7F, 0x06, 0x01, 0xF7}
	mmcPlay   = midi.Message{0xF0, 0x7F, 0x7F, 0x06, 0x02, 0xF7}
	mmcRecord = midi.Message{0xF0, 0x7F, 0x7F, 0x06, 0x06, 0xF7} // record strobe
	mmcExit   = midi.Message{0xF0, 0x7F, 0x7F, 0x06, 0x07, 0xF7} // record exit
)

// Transport drives a DAW over a one-way MIDI remote-control port: MMC
// for start/stop/record, song position pointer for the playhead, plain
// note events for sounding pitches. The port is one-way, so playing
// and recording state is tracked locally and the host tempo is
// unknown; callers fall back to their configured default.
type Transport struct {
	out *Out

	ppq       uint32
	playing   bool
	recording bool
}

// NewTransport wraps an already-open Out. ppq must match the host
// project's pulses per quarter note (FL defaults to 96).
func NewTransport(out *Out, ppq uint32) *Transport {
	if ppq == 0 {
		ppq = 96
	}
	return &Transport{out: out, ppq: ppq}
}

// MovePlayhead sends a song position pointer. SPP counts sixteenth
// notes, so ticks are scaled down by ppq/4.
func (t *Transport) MovePlayhead(tick int) error {
	sixteenths := tick * 4 / int(t.ppq)
	if sixteenths < 0 {
		sixteenths = 0
	}
	if sixteenths > 0x3fff {
		sixteenths = 0x3fff
	}
	lsb := uint8(sixteenths & 0x7f)
	msb := uint8(sixteenths >> 7 & 0x7f)
	return t.out.send(midi.Message{0xF2, lsb, msb})
}

func (t *Transport) IsPlaying() bool {
	return t.playing
}

func (t *Transport) Start() error {
	if err := t.out.send(mmcPlay); err != nil {
		return err
	}
	t.playing = true
	return nil
}

func (t *Transport) Stop() error {
	if err := t.out.send(mmcStop); err != nil {
		return err
	}
	t.playing = false
	return nil
}

func (t *Transport) IsRecording() bool {
	return t.recording
}

func (t *Transport) ToggleRecord() error {
	msg := mmcRecord
	if t.recording {
		msg = mmcExit
	}
	if err := t.out.send(msg); err != nil {
		return err
	}
	t.recording = !t.recording
	return nil
}

func (t *Transport) NoteOn(channel, pitch, velocity uint8) error {
	return t.out.send(midi.NoteOn(channel, pitch, velocity))
}

func (t *Transport) NoteOff(channel, pitch uint8) error {
	return t.out.send(midi.NoteOff(channel, pitch))
}

func (t *Transport) CurrentTempoBPM() (float64, bool) {
	return 0, false
}

func (t *Transport) TicksPerBeat() uint32 {
	return t.ppq
}
