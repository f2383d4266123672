package bebop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoloIsDeterministicPerSeed(t *testing.T) {
	a := NewGenerator(60, 42).Solo("Bebop_Dominant", 0.7, 2)
	b := NewGenerator(60, 42).Solo("Bebop_Dominant", 0.7, 2)

	assert := assert.New(t)
	assert.Equal(a, b)
	assert.NotEmpty(a)
}

func TestSoloStaysOnTheWire(t *testing.T) {
	// pitches must avoid the sentinel values 0 and 127
	for _, complexity := range []float64{0.1, 0.5, 0.9} {
		g := NewGenerator(60, 7)
		for _, n := range g.Solo("Bebop_Dominant", complexity, 2) {
			if n.Pitch < 1 || n.Pitch > 126 {
				t.Fatalf("pitch %v out of wire range", n.Pitch)
			}
			if n.Velocity > 126 {
				t.Fatalf("velocity %v out of wire range", n.Velocity)
			}
		}
	}
}

func TestSoloFitsTheMeasures(t *testing.T) {
	g := NewGenerator(60, 3)
	g.Measures = 2

	notes := g.Solo("Bebop_Major", 0.5, 2)

	assert := assert.New(t)
	assert.NotEmpty(notes)
	totalBeats := float64(g.Measures * g.BeatsPerMeasure)
	for _, n := range notes {
		assert.LessOrEqual(n.Position, totalBeats+0.1)
	}
}

func TestUnknownScaleFallsBack(t *testing.T) {
	notes := NewGenerator(60, 1).Solo("No_Such_Scale", 0.5, 2)
	assert.NotEmpty(t, notes)
}

func TestCompingFollowsTheProgression(t *testing.T) {
	g := NewGenerator(60, 9)
	g.Measures = 3

	notes := g.Comping("ii-V-I", 0.2)

	assert := assert.New(t)
	assert.NotEmpty(notes)

	// complexity 0.2 always uses the basic rhythm: stabs on every beat
	var measureStarts []float64
	seen := map[float64]bool{}
	for _, n := range notes {
		if !seen[n.Position] {
			seen[n.Position] = true
			measureStarts = append(measureStarts, n.Position)
		}
		assert.Less(n.Position, float64(g.Measures*g.BeatsPerMeasure))
	}
	assert.Equal(12, len(measureStarts)) // 3 measures * 4 stabs

	// first stab of measure one is a min7 rooted two semitones up, an
	// octave down
	first := notes[:4]
	assert.Equal(uint8(50), first[0].Pitch)
	assert.Equal(uint8(53), first[1].Pitch)
	assert.Equal(uint8(57), first[2].Pitch)
	assert.Equal(uint8(60), first[3].Pitch)
}

func TestCompingCyclesProgression(t *testing.T) {
	g := NewGenerator(60, 11)
	g.Measures = 5 // ii-V-I has 3 steps, so measure 4 wraps to ii

	notes := g.Comping("ii-V-I", 0.2)

	assert := assert.New(t)
	var atMeasure4 []uint8
	for _, n := range notes {
		if n.Position >= 12 && n.Position < 16 && len(atMeasure4) < 4 {
			atMeasure4 = append(atMeasure4, n.Pitch)
		}
	}
	assert.Equal([]uint8{50, 53, 57, 60}, atMeasure4)
}
