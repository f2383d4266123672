// Package midiport binds the wire protocol to real MIDI ports: an Out
// that paces protocol symbols onto an output port as note events, a
// Listener that feeds incoming note events into a receive session, and
// a remote-control Transport for driving a host DAW.
package midiport

import (
	"context"
	"time"

	"github.com/jsphweid/bopwire/constants"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// symbolVelocity is arbitrary; receivers only look at the note number.
const symbolVelocity uint8 = 100

// onOffGap is the pause between a symbol's note-on and note-off so the
// host registers a distinct keypress.
const onOffGap = 10 * time.Millisecond

// Out sends protocol symbols over a MIDI output port, one note event
// per symbol.
type Out struct {
	send func(midi.Message) error
}

// OpenOut opens the MIDI output port with the given number.
func OpenOut(portNo int) (*Out, error) {
	out, err := midi.OutPort(portNo)
	if err != nil {
		return nil, err
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, err
	}
	return &Out{send: send}, nil
}

// SendSymbol sends one symbol as a note-on/note-off pair on channel 0.
func (o *Out) SendSymbol(v uint8) error {
	key := v & 0x7f
	if err := o.send(midi.NoteOn(0, key, symbolVelocity)); err != nil {
		return err
	}
	time.Sleep(onOffGap)
	return o.send(midi.NoteOff(0, key))
}

// SendStream paces a whole symbol sequence onto the port, waiting
// delay between symbols so the host script keeps up. A delay below
// the recommended minimum is raised to it.
func (o *Out) SendStream(ctx context.Context, syms []uint8, delay time.Duration) error {
	if delay < constants.SymbolDelay {
		delay = constants.SymbolDelay
	}
	for _, sym := range syms {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.SendSymbol(sym); err != nil {
			return err
		}
		time.Sleep(delay)
	}
	return nil
}
