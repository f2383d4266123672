// Package wire implements the symbol-stream encoding for note batches.
//
// The transport channel can only carry note values 0-127, one at a
// time, so everything is flattened into that alphabet:
//
//	START(0) COUNT REC*COUNT END(127)
//	REC := pitch vel len_whole len_dec pos_whole pos_dec [channel]
//
// Beat fractions are carried as a single decimal digit, which is why
// lengths and positions are lossy past 0.1-beat resolution.
package wire

import (
	"math"

	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/util"
)

// Quantize rounds a beat value to the 0.1 resolution the wire carries.
func Quantize(beats float64) float64 {
	return math.Round(beats*10) / 10
}

func clampSymbol(v int) uint8 {
	return uint8(util.Clamp(v, 0, 127))
}

func appendRecord(syms []uint8, n model.Note, tagged bool) []uint8 {
	lenWhole := math.Floor(n.Length)
	lenDec := int(math.Round((n.Length-lenWhole)*10)) % 10
	posWhole := math.Floor(n.Position)
	posDec := int(math.Round((n.Position-posWhole)*10)) % 10

	syms = append(syms,
		clampSymbol(int(n.Pitch)),
		clampSymbol(int(n.Velocity)),
		clampSymbol(int(lenWhole)),
		uint8(lenDec),
		clampSymbol(int(posWhole)),
		uint8(posDec),
	)
	if tagged {
		syms = append(syms, clampSymbol(int(n.ChannelOr(0))))
	}
	return syms
}

func encode(batch model.Batch, tagged bool) ([]uint8, bool) {
	count := util.Min(len(batch), constants.MaxBatch)
	truncated := len(batch) > constants.MaxBatch

	size := constants.RecordSize
	if tagged {
		size = constants.TaggedRecordSize
	}

	syms := make([]uint8, 0, 3+count*size)
	syms = append(syms, constants.StartSentinel, uint8(count))
	for _, n := range batch[:count] {
		syms = appendRecord(syms, n, tagged)
	}
	syms = append(syms, constants.EndSentinel)
	return syms, truncated
}

// Encode produces the full framed symbol sequence for a batch. The
// caller is responsible for pacing symbols onto the channel. Batches
// over 127 records are truncated; the bool return reports that, since
// the channel itself cannot carry an error.
func Encode(batch model.Batch) ([]uint8, bool) {
	return encode(batch, false)
}

// EncodeTagged is Encode with 7-symbol records, the extra symbol
// carrying each note's channel tag (0 for untagged notes).
func EncodeTagged(batch model.Batch) ([]uint8, bool) {
	return encode(batch, true)
}

// DecodeRecord is the inverse of one record's encoding. syms must be
// exactly one record long for the given mode.
func DecodeRecord(syms []uint8, tagged bool) model.Note {
	n := model.Note{
		Pitch:    syms[0],
		Velocity: syms[1],
		Length:   float64(syms[2]) + float64(syms[3])/10.0,
		Position: float64(syms[4]) + float64(syms[5])/10.0,
		Channel:  model.NoChannel,
	}
	if tagged {
		n.Channel = int8(syms[6] & 0x7f)
	}
	return n
}
