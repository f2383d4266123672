// Package bebop generates bebop solo lines and chord comping as note
// batches. It is the content side of the pipeline; the wire/receiver/
// recorder packages don't care where batches come from.
package bebop

import (
	"math"
	"math/rand"

	"github.com/jsphweid/bopwire/model"
)

// Generator produces solo and comping batches around a key root.
type Generator struct {
	Root            uint8 // MIDI root note, e.g. 60 = C4
	Measures        int
	BeatsPerMeasure int

	rnd *rand.Rand
}

// NewGenerator returns a generator for the given root. Results are
// deterministic per seed.
func NewGenerator(root uint8, seed int64) *Generator {
	if root == 0 {
		root = 60
	}
	return &Generator{
		Root:            root,
		Measures:        4,
		BeatsPerMeasure: 4,
		rnd:             rand.New(rand.NewSource(seed)),
	}
}

func pickNames(complexity float64, low, mid []string, all []string) []string {
	if complexity < 0.3 {
		return low
	}
	if complexity < 0.6 {
		return mid
	}
	return all
}

func (g *Generator) choice(names []string) string {
	return names[g.rnd.Intn(len(names))]
}

// clampPitch folds a pitch into [low, high] by octaves.
func clampPitch(pitch, low, high int) uint8 {
	for pitch < low {
		pitch += 12
	}
	for pitch > high {
		pitch -= 12
	}
	if pitch < 1 {
		pitch = 1
	}
	if pitch > 126 {
		pitch = 126
	}
	return uint8(pitch)
}

// Solo generates a bebop solo line over the configured measures.
// complexity in [0,1] widens the rhythm/phrase vocabulary and enables
// swing offsets and chromatic approach notes.
func (g *Generator) Solo(scaleType string, complexity float64, rangeOctaves int) model.Batch {
	scale, ok := Scales[scaleType]
	if !ok {
		scale = Scales["Bebop_Dominant"]
	}
	if rangeOctaves <= 0 {
		rangeOctaves = 2
	}

	rhythmNames := pickNames(complexity,
		[]string{"standard", "syncopated"},
		[]string{"standard", "syncopated", "fast", "triplet"},
		[]string{"standard", "syncopated", "fast", "triplet", "mixed", "chromatic_run"})
	phraseNames := pickNames(complexity,
		[]string{"ascending", "descending"},
		[]string{"ascending", "descending", "arpeggios"},
		[]string{"ascending", "descending", "arpeggios", "approach_notes", "enclosure"})

	totalBeats := float64(g.Measures * g.BeatsPerMeasure)
	root := int(g.Root)
	low := root - 12
	high := root + rangeOctaves*12

	var notes model.Batch
	position := 0.0

	for position < totalBeats {
		rhythm := soloRhythms[g.choice(rhythmNames)]
		phrase := soloPhrases[g.choice(phraseNames)]

		// trim the rhythm pattern to what's left of the measure
		beatsLeft := float64(g.BeatsPerMeasure) - math.Mod(position, float64(g.BeatsPerMeasure))
		rhythm = trimRhythm(rhythm, beatsLeft)

		startDegree := g.rnd.Intn(len(scale))
		octaveShift := (g.rnd.Intn(3) - 1) * 12

		for i, length := range rhythm {
			var degreeChange int
			if i < len(phrase) {
				degreeChange = phrase[i]
			} else {
				degreeChange = g.rnd.Intn(5) - 2
			}

			degree := ((startDegree+degreeChange)%len(scale) + len(scale)) % len(scale)
			pitch := clampPitch(root+scale[degree]+octaveShift, low, high)
			velocity := uint8(70 + g.rnd.Intn(41))

			swing := 0.0
			if i%2 == 1 && complexity > 0.4 {
				swing = 0.01 + g.rnd.Float64()*0.09
			}

			if complexity > 0.6 && g.rnd.Float64() < 0.3 && length > 0.2 {
				// chromatic approach note, half the slot
				offset := 1
				if g.rnd.Intn(2) == 0 {
					offset = -1
				}
				approach := clampPitch(int(pitch)+offset, low, high)
				half := length / 2
				notes = append(notes, model.Note{
					Pitch:    approach,
					Velocity: velocity - 10,
					Length:   half,
					Position: position,
					Channel:  model.NoChannel,
				})
				position += half
				length -= half
			}

			notes = append(notes, model.Note{
				Pitch:    pitch,
				Velocity: velocity,
				Length:   length,
				Position: position + swing,
				Channel:  model.NoChannel,
			})
			position += length
			if position > totalBeats {
				break
			}
		}

		// the occasional breath
		if g.rnd.Float64() < 0.2 && position < totalBeats {
			rest := 0.5
			if g.rnd.Intn(2) == 0 {
				rest = 1.0
			}
			if position+rest <= totalBeats {
				position += rest
			}
		}
	}

	return notes
}

// Comping generates chord stabs for the given progression, one
// progression step per measure, cycling if there are more measures
// than steps.
func (g *Generator) Comping(progressionType string, complexity float64) model.Batch {
	progression, ok := Progressions[progressionType]
	if !ok {
		progression = Progressions["ii-V-I"]
	}

	rhythmNames := pickNames(complexity,
		[]string{"basic"},
		[]string{"basic", "syncopated", "charleston"},
		[]string{"basic", "syncopated", "charleston", "bossa", "modern"})

	var notes model.Batch
	for m := 0; m < g.Measures; m++ {
		step := progression[m%len(progression)]
		voicing := Chords[step.chord]
		chordRoot := int(g.Root) + step.root - 12 // comp below the solo

		rhythm := compingRhythms[g.choice(rhythmNames)]
		position := float64(m * g.BeatsPerMeasure)
		measureEnd := position + float64(g.BeatsPerMeasure)

		for _, length := range rhythm {
			if position >= measureEnd {
				break
			}
			velocity := uint8(60 + g.rnd.Intn(26))
			for _, interval := range voicing {
				notes = append(notes, model.Note{
					Pitch:    clampPitch(chordRoot+interval, 24, 100),
					Velocity: velocity,
					Length:   length * 0.9,
					Position: position,
					Channel:  model.NoChannel,
				})
			}
			position += length
		}
	}

	return notes
}

func trimRhythm(rhythm []float64, beatsLeft float64) []float64 {
	var total float64
	for _, r := range rhythm {
		total += r
	}
	if total <= beatsLeft {
		return rhythm
	}
	var res []float64
	remaining := beatsLeft
	for _, r := range rhythm {
		if r <= remaining {
			res = append(res, r)
			remaining -= r
		} else {
			if remaining > 0 {
				res = append(res, remaining)
			}
			break
		}
	}
	return res
}
