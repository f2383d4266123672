package wire

import (
	"fmt"
	"testing"

	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/model"
	"github.com/stretchr/testify/assert"
)

func TestEncodeFraming(t *testing.T) {
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 1.5, Position: 2.3, Channel: model.NoChannel},
	}
	syms, truncated := Encode(batch)

	assert := assert.New(t)
	assert.False(truncated)
	assert.Equal([]uint8{0, 1, 60, 100, 1, 5, 2, 3, 127}, syms)
}

func TestEncodeEmptyBatch(t *testing.T) {
	syms, truncated := Encode(model.Batch{})

	assert := assert.New(t)
	assert.False(truncated)
	assert.Equal([]uint8{0, 0, 127}, syms)
}

func TestEncodeTruncatesAt127(t *testing.T) {
	batch := make(model.Batch, 200)
	for i := range batch {
		batch[i] = model.Note{Pitch: 60, Velocity: 100, Channel: model.NoChannel}
	}
	syms, truncated := Encode(batch)

	assert := assert.New(t)
	assert.True(truncated)
	assert.Equal(uint8(127), syms[1])
	assert.Equal(3+127*constants.RecordSize, len(syms))
}

func TestEncodeClampsBigDurations(t *testing.T) {
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 200.7, Position: 150.2, Channel: model.NoChannel},
	}
	syms, _ := Encode(batch)

	assert := assert.New(t)
	assert.Equal(uint8(127), syms[4]) // length whole
	assert.Equal(uint8(127), syms[6]) // position whole
}

func TestEncodeTagged(t *testing.T) {
	batch := model.Batch{
		{Pitch: 62, Velocity: 90, Length: 0.5, Position: 0, Channel: 1},
		{Pitch: 64, Velocity: 80, Length: 1.0, Position: 0.5, Channel: model.NoChannel},
	}
	syms, truncated := EncodeTagged(batch)

	assert := assert.New(t)
	assert.False(truncated)
	assert.Equal([]uint8{
		0, 2,
		62, 90, 0, 5, 0, 0, 1,
		64, 80, 1, 0, 0, 5, 0, // untagged notes carry channel 0
		127,
	}, syms)
}

func TestDecodeRecordInvertsEncoding(t *testing.T) {
	cases := []model.Note{
		{Pitch: 1, Velocity: 1, Length: 0, Position: 0, Channel: model.NoChannel},
		{Pitch: 60, Velocity: 100, Length: 1.5, Position: 2.3, Channel: model.NoChannel},
		{Pitch: 126, Velocity: 126, Length: 99.5, Position: 126.5, Channel: model.NoChannel},
	}

	for _, n := range cases {
		name := fmt.Sprintf("pitch %v", n.Pitch)
		t.Run(name, func(t *testing.T) {
			syms := appendRecord(nil, n, false)
			assert.Equal(t, n, DecodeRecord(syms, false))
		})
	}
}

func TestDecimalDigitRounding(t *testing.T) {
	// 0.96 rounds up past the carried digit and wraps to .0
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 0.96, Position: 0.24, Channel: model.NoChannel},
	}
	syms, _ := Encode(batch)

	assert := assert.New(t)
	assert.Equal(uint8(0), syms[5]) // len decimal wrapped
	assert.Equal(uint8(2), syms[7]) // pos decimal rounded down
}

func TestQuantize(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1.5, Quantize(1.5))
	assert.Equal(1.5, Quantize(1.52))
	assert.Equal(1.6, Quantize(1.55))
	assert.Equal(0.0, Quantize(0.04))
}
