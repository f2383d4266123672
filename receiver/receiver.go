// Package receiver reconstructs note batches from the one-symbol-at-a-
// time stream produced by the wire encoder. Every symbol is ambiguous
// on its own, so an explicit state machine decides what each one means.
package receiver

import (
	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/wire"
)

// Mode is the receive state.
type Mode int

const (
	// ModeIdle means no transfer is in progress; everything but the
	// start sentinel is ignored.
	ModeIdle Mode = iota
	// ModeAwaitingCount means a start sentinel arrived and the next
	// symbol is the record count.
	ModeAwaitingCount
	// ModeCollecting means record values are being buffered.
	ModeCollecting
)

// Status is what one Feed call tells the caller.
type Status int

const (
	StatusIdle Status = iota
	StatusInProgress
	StatusCompleted
)

// Session holds all receive state for one symbol stream. Drive it from
// a single goroutine; two goroutines feeding one Session will corrupt
// it. Feed never blocks.
//
// The sending side reuses the data alphabet for framing, so a transfer
// genuinely containing a pitch-127 value terminates early and a
// pitch-0 value cannot appear at all. That lossy collision is part of
// the wire format, not something the receiver can detect.
type Session struct {
	mode     Mode
	expected int
	buf      []uint8
	notes    model.Batch
	tagged   bool
}

// NewSession returns a session for 6-symbol records.
func NewSession() *Session {
	return &Session{}
}

// NewTaggedSession returns a session for 7-symbol records where the
// last value of each record is a per-note channel tag.
func NewTaggedSession() *Session {
	return &Session{tagged: true}
}

// Mode returns the current receive state.
func (s *Session) Mode() Mode {
	return s.mode
}

// Reset abandons any transfer in progress.
func (s *Session) Reset() {
	s.mode = ModeIdle
	s.expected = 0
	s.buf = nil
	s.notes = nil
}

func (s *Session) recordSize() int {
	if s.tagged {
		return constants.TaggedRecordSize
	}
	return constants.RecordSize
}

func (s *Session) complete() model.Batch {
	batch := s.notes
	if batch == nil {
		batch = model.Batch{}
	}
	s.Reset()
	return batch
}

// Feed processes exactly one symbol and returns the resulting status.
// The batch return is non-nil only when the status is StatusCompleted:
// either the expected record count was reached or the end sentinel
// arrived, whichever came first. On the sentinel, any incomplete
// trailing record is dropped.
func (s *Session) Feed(sym uint8) (Status, model.Batch) {
	switch s.mode {
	case ModeIdle:
		if sym == constants.StartSentinel {
			s.Reset()
			s.mode = ModeAwaitingCount
			return StatusInProgress, nil
		}
		return StatusIdle, nil

	case ModeAwaitingCount:
		if sym == 0 {
			// a zero-length transfer completes immediately
			return StatusCompleted, s.complete()
		}
		s.expected = int(sym)
		s.mode = ModeCollecting
		return StatusInProgress, nil

	default: // ModeCollecting
		if sym == constants.EndSentinel {
			return StatusCompleted, s.complete()
		}

		s.buf = append(s.buf, sym)
		size := s.recordSize()
		if len(s.buf)%size == 0 {
			rec := s.buf[len(s.buf)-size:]
			s.notes = append(s.notes, wire.DecodeRecord(rec, s.tagged))
			if len(s.notes) >= s.expected {
				return StatusCompleted, s.complete()
			}
		}
		return StatusInProgress, nil
	}
}

// FeedAll runs a whole symbol slice through the session and collects
// every batch completed along the way. Mostly a convenience for tests
// and offline decoding of captured streams.
func FeedAll(s *Session, syms []uint8) []model.Batch {
	var res []model.Batch
	for _, sym := range syms {
		if status, batch := s.Feed(sym); status == StatusCompleted {
			res = append(res, batch)
		}
	}
	return res
}
