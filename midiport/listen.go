package midiport

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/receiver"
	"gitlab.com/gomidi/midi/v2"
)

// batchDebounce coalesces completion callbacks so trailing control
// traffic right after a transfer doesn't interleave with handling.
const batchDebounce = 300 * time.Millisecond

// Listen opens the MIDI input port with the given number and feeds
// every incoming note-on into a fresh receive session. Completed
// batches are handed to onBatch (debounced, from a single goroutine).
// The returned func stops listening.
func Listen(portNo int, tagged bool, onBatch func(model.Batch)) (func(), error) {
	in, err := midi.InPort(portNo)
	if err != nil {
		return nil, err
	}

	sess := receiver.NewSession()
	if tagged {
		sess = receiver.NewTaggedSession()
	}

	var mu sync.Mutex
	var done []model.Batch
	d := debounce.New(batchDebounce)
	flush := func() {
		mu.Lock()
		batches := done
		done = nil
		mu.Unlock()
		for _, b := range batches {
			onBatch(b)
		}
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			if vel == 0 {
				return
			}
			status, batch := sess.Feed(key)
			if status == receiver.StatusCompleted {
				mu.Lock()
				done = append(done, batch)
				mu.Unlock()
				d(flush)
			}
		default:
			// only note-ons carry protocol symbols
		}
	})
	if err != nil {
		return nil, err
	}
	return stop, nil
}
