// Package midifile converts between note batches and standard midi
// files, so batches can be captured to disk and existing .mid material
// can be pushed through the wire.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/bopwire/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const defaultPPQ = 96

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)

	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))

	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}

func resolution(s *smf.SMF) float64 {
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		return float64(mt.Resolution())
	}
	return defaultPPQ
}

// ReadBatch extracts every note of a midi file as a batch: positions
// and lengths in beats, channels carried as tags. Unmatched note-ons
// are dropped.
func ReadBatch(filepath string) (model.Batch, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}

	ppq := resolution(s)
	var batch model.Batch

	type onKey struct {
		channel uint8
		pitch   uint8
	}
	for _, events := range s.Tracks {
		var absTicks int64
		pressed := make(map[onKey]model.Note)
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel uint8
			var key uint8
			var velocity uint8
			isOn := event.Message.GetNoteOn(&channel, &key, &velocity)
			isOff := event.Message.GetNoteOff(&channel, &key, &velocity)
			switch {
			case isOn && velocity > 0:
				pressed[onKey{channel, key}] = model.Note{
					Pitch:    key,
					Velocity: velocity,
					Position: float64(absTicks) / ppq,
					Channel:  int8(channel),
				}
			case isOff || isOn: // note-on with velocity 0 releases too
				k := onKey{channel, key}
				if n, ok := pressed[k]; ok {
					n.Length = float64(absTicks)/ppq - n.Position
					batch = append(batch, n)
					delete(pressed, k)
				}
			}
		}
	}

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Position < batch[j].Position
	})
	return batch, nil
}

// WriteBatch saves a batch as a single-track midi file at the given
// tempo. Channel tags are kept; untagged notes land on channel 0.
func WriteBatch(filepath string, batch model.Batch, bpm float64) error {
	type edge struct {
		tick uint32
		off  bool
		note model.Note
	}

	var edges []edge
	for _, n := range batch {
		on := uint32(n.Position * defaultPPQ)
		off := on + uint32(n.Length*defaultPPQ)
		edges = append(edges, edge{tick: on, note: n})
		edges = append(edges, edge{tick: off, off: true, note: n})
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].tick != edges[j].tick {
			return edges[i].tick < edges[j].tick
		}
		// note-offs first so re-struck pitches don't cancel
		return edges[i].off && !edges[j].off
	})

	var tr smf.Track
	tr = append(tr, smf.Event{Message: smf.MetaTempo(bpm)})
	var prev uint32
	for _, e := range edges {
		delta := e.tick - prev
		prev = e.tick
		ch := e.note.ChannelOr(0)
		var msg midi.Message
		if e.off {
			msg = midi.NoteOff(ch, e.note.Pitch)
		} else {
			msg = midi.NoteOn(ch, e.note.Pitch, e.note.Velocity)
		}
		tr = append(tr, smf.Event{Delta: delta, Message: smf.Message(msg)})
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(defaultPPQ)
	s.Add(tr)

	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = s.WriteTo(f)
	return err
}

// Preview trims a batch to at most maxNotes notes starting at
// offsetBeats, rebasing positions to start at 0. Handy for sounding
// out a library match without replaying the whole file.
func Preview(batch model.Batch, offsetBeats float64, maxNotes int) model.Batch {
	var res model.Batch
	for _, n := range batch {
		if n.Position < offsetBeats {
			continue
		}
		rebased := n
		rebased.Position = n.Position - offsetBeats
		res = append(res, rebased)
		if maxNotes > 0 && len(res) >= maxNotes {
			break
		}
	}
	return res
}
