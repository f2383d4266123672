package midifile

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/bopwire/model"
	"github.com/stretchr/testify/assert"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.mid")

	// channels survive the file; untagged notes land on channel 0
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 1.0, Position: 0.0, Channel: 0},
		{Pitch: 48, Velocity: 80, Length: 2.0, Position: 0.5, Channel: 1},
		{Pitch: 64, Velocity: 90, Length: 0.5, Position: 2.0, Channel: 0},
	}

	assert := assert.New(t)
	assert.NoError(WriteBatch(path, batch, 120))

	got, err := ReadBatch(path)
	assert.NoError(err)
	assert.Equal(batch, got)
}

func TestReadBatchMissingFile(t *testing.T) {
	_, err := ReadBatch(filepath.Join(t.TempDir(), "nope.mid"))
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 1.0, Position: 0.0, Channel: model.NoChannel},
		{Pitch: 62, Velocity: 100, Length: 1.0, Position: 2.0, Channel: model.NoChannel},
		{Pitch: 64, Velocity: 100, Length: 1.0, Position: 4.0, Channel: model.NoChannel},
		{Pitch: 65, Velocity: 100, Length: 1.0, Position: 6.0, Channel: model.NoChannel},
	}

	got := Preview(batch, 2.0, 2)

	assert := assert.New(t)
	assert.Equal(2, len(got))
	assert.Equal(uint8(62), got[0].Pitch)
	assert.Equal(0.0, got[0].Position)
	assert.Equal(uint8(64), got[1].Pitch)
	assert.Equal(2.0, got[1].Position)
}
