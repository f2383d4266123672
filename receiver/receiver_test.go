package receiver

import (
	"fmt"
	"testing"

	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/wire"
	"github.com/stretchr/testify/assert"
)

func record(pitch, vel, lenWhole, lenDec, posWhole, posDec uint8) []uint8 {
	return []uint8{pitch, vel, lenWhole, lenDec, posWhole, posDec}
}

func feedAllStatuses(s *Session, syms []uint8) (last Status, batch model.Batch) {
	for _, sym := range syms {
		st, b := s.Feed(sym)
		last = st
		if b != nil {
			batch = b
		}
	}
	return last, batch
}

func TestIdleIgnoresNonSentinelSymbols(t *testing.T) {
	s := NewSession()

	assert := assert.New(t)
	for _, sym := range []uint8{1, 60, 126, 127} {
		status, batch := s.Feed(sym)
		assert.Equal(StatusIdle, status)
		assert.Nil(batch)
		assert.Equal(ModeIdle, s.Mode())
	}
}

func TestCompleteTransfer(t *testing.T) {
	s := NewSession()
	syms := []uint8{0, 2}
	syms = append(syms, record(60, 100, 1, 0, 0, 0)...)
	syms = append(syms, record(64, 90, 0, 5, 1, 5)...)
	syms = append(syms, 127)

	assert := assert.New(t)

	status, batch := s.Feed(syms[0])
	assert.Equal(StatusInProgress, status)
	assert.Nil(batch)
	assert.Equal(ModeAwaitingCount, s.Mode())

	// count reached on the final record symbol, before the sentinel
	var completed model.Batch
	for _, sym := range syms[1 : len(syms)-1] {
		status, b := s.Feed(sym)
		if b != nil {
			completed = b
			assert.Equal(StatusCompleted, status)
		}
	}
	assert.Equal(model.Batch{
		{Pitch: 60, Velocity: 100, Length: 1.0, Position: 0.0, Channel: model.NoChannel},
		{Pitch: 64, Velocity: 90, Length: 0.5, Position: 1.5, Channel: model.NoChannel},
	}, completed)

	// the trailing sentinel lands on an idle session
	status, batch = s.Feed(127)
	assert.Equal(StatusIdle, status)
	assert.Nil(batch)
}

func TestZeroCountCompletesImmediately(t *testing.T) {
	s := NewSession()

	assert := assert.New(t)
	status, _ := s.Feed(0)
	assert.Equal(StatusInProgress, status)

	status, batch := s.Feed(0)
	assert.Equal(StatusCompleted, status)
	assert.NotNil(batch)
	assert.Equal(0, len(batch))
	assert.Equal(ModeIdle, s.Mode())
}

func TestEndSentinelFlushesShortTransfer(t *testing.T) {
	// count says 5 but only 2 full records arrive
	s := NewSession()
	syms := []uint8{0, 5}
	syms = append(syms, record(60, 100, 1, 0, 0, 0)...)
	syms = append(syms, record(62, 100, 1, 0, 1, 0)...)
	syms = append(syms, 127)

	status, batch := feedAllStatuses(s, syms)

	assert := assert.New(t)
	assert.Equal(StatusCompleted, status)
	assert.Equal(2, len(batch))
	assert.Equal(ModeIdle, s.Mode())
}

func TestPartialTupleIsDropped(t *testing.T) {
	s := NewSession()

	status, batch := feedAllStatuses(s, []uint8{0, 1, 10, 80, 127})

	assert := assert.New(t)
	assert.Equal(StatusCompleted, status)
	assert.NotNil(batch)
	assert.Equal(0, len(batch))
}

func TestZeroSymbolIsDataWhileCollecting(t *testing.T) {
	// pitch 0 only acts as a sentinel from idle; inside a record it is
	// an ordinary value
	s := NewSession()
	syms := []uint8{0, 1}
	syms = append(syms, record(10, 0, 0, 0, 0, 0)...)

	status, batch := feedAllStatuses(s, syms)

	assert := assert.New(t)
	assert.Equal(StatusCompleted, status)
	assert.Equal(1, len(batch))
	assert.Equal(uint8(0), batch[0].Velocity)
}

func TestAllCountsRoundTrip(t *testing.T) {
	for count := 0; count <= 127; count++ {
		t.Run(fmt.Sprintf("count %v", count), func(t *testing.T) {
			batch := make(model.Batch, count)
			for i := range batch {
				batch[i] = model.Note{
					Pitch:    uint8(1 + i%126),
					Velocity: uint8(1 + (i*7)%126),
					Length:   0.5,
					Position: float64(i) * 0.5,
					Channel:  model.NoChannel,
				}
			}
			syms, truncated := wire.Encode(batch)
			assert := assert.New(t)
			assert.False(truncated)

			batches := FeedAll(NewSession(), syms)
			assert.Equal(1, len(batches))
			assert.Equal(count, len(batches[0]))
			if count > 0 {
				assert.Equal(batch, batches[0])
			}
		})
	}
}

func TestTaggedTransferRoundTrip(t *testing.T) {
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 1.0, Position: 0.0, Channel: 0},
		{Pitch: 48, Velocity: 80, Length: 2.0, Position: 0.0, Channel: 1},
		{Pitch: 62, Velocity: 90, Length: 0.5, Position: 1.5, Channel: 0},
	}
	syms, _ := wire.EncodeTagged(batch)

	batches := FeedAll(NewTaggedSession(), syms)

	assert := assert.New(t)
	assert.Equal(1, len(batches))
	assert.Equal(batch, batches[0])
}

func TestBackToBackTransfers(t *testing.T) {
	first, _ := wire.Encode(model.Batch{
		{Pitch: 60, Velocity: 100, Length: 1.0, Position: 0.0, Channel: model.NoChannel},
	})
	second, _ := wire.Encode(model.Batch{
		{Pitch: 72, Velocity: 90, Length: 0.5, Position: 2.0, Channel: model.NoChannel},
	})

	s := NewSession()
	batches := FeedAll(s, append(append([]uint8{}, first...), second...))

	assert := assert.New(t)
	assert.Equal(2, len(batches))
	assert.Equal(uint8(60), batches[0][0].Pitch)
	assert.Equal(uint8(72), batches[1][0].Pitch)
}

func TestResetAbandonsTransfer(t *testing.T) {
	s := NewSession()
	s.Feed(0)
	s.Feed(3)
	s.Feed(60)

	s.Reset()

	assert := assert.New(t)
	assert.Equal(ModeIdle, s.Mode())
	status, _ := s.Feed(60)
	assert.Equal(StatusIdle, status)
}
