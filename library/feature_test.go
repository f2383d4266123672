package library

import (
	"testing"

	"github.com/jsphweid/bopwire/model"
	"github.com/stretchr/testify/assert"
)

func TestFeatureSerializeDeserialize(t *testing.T) {
	f := model.LickFeature{
		FileNum:    7,
		MeanPitch:  63.5,
		PitchRange: 19,
		NoteCount:  42,
	}
	f.PitchClasses[0] = 0.5
	f.PitchClasses[4] = 0.25
	f.PitchClasses[7] = 0.25

	b := Serialize(f)

	assert := assert.New(t)
	assert.Equal(FeatureSize, len(b))
	assert.Equal(f, Deserialize(b))
}

func TestAnalyzeBuildsLengthWeightedHistogram(t *testing.T) {
	batch := model.Batch{
		{Pitch: 60, Velocity: 100, Length: 3.0, Channel: model.NoChannel}, // C
		{Pitch: 64, Velocity: 100, Length: 1.0, Channel: model.NoChannel}, // E
	}
	f := Analyze(batch, 3)

	assert := assert.New(t)
	assert.Equal(uint32(3), f.FileNum)
	assert.Equal(uint32(2), f.NoteCount)
	assert.Equal(float32(0.75), f.PitchClasses[0])
	assert.Equal(float32(0.25), f.PitchClasses[4])
	assert.Equal(float32(62), f.MeanPitch)
	assert.Equal(float32(4), f.PitchRange)
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	f := Analyze(model.Batch{}, 1)
	assert.Equal(t, uint32(0), f.NoteCount)
}

func TestFindSimilarPrefersMatchingPitchClasses(t *testing.T) {
	cMajor := Analyze(model.Batch{
		{Pitch: 60, Length: 1, Channel: model.NoChannel},
		{Pitch: 64, Length: 1, Channel: model.NoChannel},
		{Pitch: 67, Length: 1, Channel: model.NoChannel},
	}, 1)
	fSharp := Analyze(model.Batch{
		{Pitch: 66, Length: 1, Channel: model.NoChannel},
		{Pitch: 70, Length: 1, Channel: model.NoChannel},
		{Pitch: 73, Length: 1, Channel: model.NoChannel},
	}, 2)

	matches := FindSimilar([]model.LickFeature{fSharp, cMajor}, []uint8{60, 64, 67}, 2)

	assert := assert.New(t)
	assert.Equal(2, len(matches))
	assert.Equal(uint32(1), matches[0].FileNum)
	assert.Greater(matches[0].Score, matches[1].Score)
}

func TestFindSimilarHonorsTopK(t *testing.T) {
	var features []model.LickFeature
	for i := 0; i < 10; i++ {
		features = append(features, Analyze(model.Batch{
			{Pitch: uint8(60 + i), Length: 1, Channel: model.NoChannel},
		}, uint32(i)))
	}

	matches := FindSimilar(features, []uint8{60}, 3)
	assert.Equal(t, 3, len(matches))
}

func TestCosine(t *testing.T) {
	a := ChordFeature([]uint8{60, 64, 67})

	assert := assert.New(t)
	assert.InDelta(1.0, Cosine(a, a), 1e-9)
	assert.Equal(0.0, Cosine(a, [model.NumPitchClasses]float32{}))
}
