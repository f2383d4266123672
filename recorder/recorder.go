// Package recorder replays a decoded note batch against a host
// transport in real time: for every group of notes sharing a start
// position it parks the playhead, arms recording, sounds the notes for
// their real-world duration, then moves on. The whole run blocks its
// caller for the wall-clock length of the performance.
package recorder

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/util"
	"github.com/jsphweid/bopwire/wire"
)

// Options tune a Recorder. Zero values fall back to the defaults in
// constants.
type Options struct {
	// DefaultTempoBPM is used when the host cannot report a tempo.
	DefaultTempoBPM float64
	// MaxGroupWait bounds the blocking wait of a single group, so a
	// garbage duration on the wire cannot stall a run for minutes.
	MaxGroupWait time.Duration
	// SettleDelay is the pause after each group, giving the host time
	// to commit the recorded segment.
	SettleDelay time.Duration
	Clock       Clock
}

// Recorder drives one Transport. A Recorder is safe for concurrent use
// but runs are serialized: the transport is a single shared instrument
// and two interleaved runs would fight over it.
type Recorder struct {
	transport Transport
	opts      Options

	mu sync.Mutex
}

// New returns a Recorder for the given transport.
func New(t Transport, opts Options) *Recorder {
	if opts.DefaultTempoBPM <= 0 {
		opts.DefaultTempoBPM = constants.DefaultTempoBPM
	}
	if opts.MaxGroupWait <= 0 {
		opts.MaxGroupWait = constants.MaxGroupWait
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = constants.SettleDelay
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	return &Recorder{transport: t, opts: opts}
}

// groupByPosition buckets notes by their 0.1-quantized start position
// and returns the sorted positions alongside the buckets.
func groupByPosition(batch model.Batch) ([]float64, map[float64]model.Batch) {
	groups := make(map[float64]model.Batch)
	for _, n := range batch {
		pos := wire.Quantize(n.Position)
		groups[pos] = append(groups[pos], n)
	}
	positions := util.GetKeys(groups)
	sort.Float64s(positions)
	return positions, groups
}

func maxLength(notes model.Batch) float64 {
	var res float64
	for _, n := range notes {
		if n.Length > res {
			res = n.Length
		}
	}
	return res
}

func (r *Recorder) tempo() float64 {
	bpm, ok := r.transport.CurrentTempoBPM()
	if !ok || bpm <= 0 {
		return r.opts.DefaultTempoBPM
	}
	return bpm
}

// hostCall runs a transport call and absorbs its failure: a partially
// recorded batch beats aborting the whole run over one flaky toggle.
func hostCall(what string, fn func() error) {
	if err := fn(); err != nil {
		fmt.Printf("transport %v failed, continuing: %v\n", what, err)
	}
}

// Record replays the batch against the transport, blocking until every
// position group has been performed, then returns the playhead to 0.
// Untagged notes sound on channel; tagged notes sound on their own
// channel. ctx cancels between groups and during waits; on
// cancellation any sounding notes are released and the transport is
// stopped before returning.
func (r *Recorder) Record(ctx context.Context, batch model.Batch, channel uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	t := r.transport
	positions, groups := groupByPosition(batch)

	if t.IsPlaying() {
		hostCall("stop", t.Stop)
	}

	ppq := t.TicksPerBeat()
	for _, pos := range positions {
		if err := ctx.Err(); err != nil {
			return err
		}
		notes := groups[pos]

		tick := int(math.Round(pos * float64(ppq)))
		hostCall("move playhead", func() error { return t.MovePlayhead(tick) })

		if !t.IsRecording() {
			hostCall("record arm", t.ToggleRecord)
		}
		hostCall("start", t.Start)

		for _, n := range notes {
			ch := n.ChannelOr(channel)
			hostCall("note on", func() error { return t.NoteOn(ch, n.Pitch, n.Velocity) })
		}

		wait := time.Duration(maxLength(notes) * 60 / r.tempo() * float64(time.Second))
		if wait > r.opts.MaxGroupWait {
			wait = r.opts.MaxGroupWait
		}
		err := r.opts.Clock.Sleep(ctx, wait)

		for _, n := range notes {
			ch := n.ChannelOr(channel)
			hostCall("note off", func() error { return t.NoteOff(ch, n.Pitch) })
		}
		hostCall("stop", t.Stop)
		if t.IsRecording() {
			hostCall("record disarm", t.ToggleRecord)
		}
		if err != nil {
			return err
		}

		// let the host commit the segment before the next group
		if err := r.opts.Clock.Sleep(ctx, r.opts.SettleDelay); err != nil {
			return err
		}
	}

	hostCall("move playhead", func() error { return t.MovePlayhead(0) })
	return nil
}
