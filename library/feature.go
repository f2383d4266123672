package library

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/jsphweid/bopwire/model"
)

// FeatureSize is the on-disk size of one serialized LickFeature:
// 4 (FileNum) + 12*4 (PitchClasses) + 4 + 4 + 4 = 64 bytes.
const FeatureSize = 64

func Serialize(f model.LickFeature) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, f.FileNum)
	binary.Write(buf, binary.LittleEndian, f.PitchClasses)
	binary.Write(buf, binary.LittleEndian, f.MeanPitch)
	binary.Write(buf, binary.LittleEndian, f.PitchRange)
	binary.Write(buf, binary.LittleEndian, f.NoteCount)
	return buf.Bytes()
}

func Deserialize(b []byte) model.LickFeature {
	var f model.LickFeature
	r := bytes.NewReader(b)
	binary.Read(r, binary.LittleEndian, &f.FileNum)
	binary.Read(r, binary.LittleEndian, &f.PitchClasses)
	binary.Read(r, binary.LittleEndian, &f.MeanPitch)
	binary.Read(r, binary.LittleEndian, &f.PitchRange)
	binary.Read(r, binary.LittleEndian, &f.NoteCount)
	return f
}

// Analyze reduces a batch to its library feature record: a normalized
// pitch-class histogram weighted by note length, plus coarse stats.
func Analyze(batch model.Batch, fileNum uint32) model.LickFeature {
	f := model.LickFeature{FileNum: fileNum}
	if len(batch) == 0 {
		return f
	}

	var total float64
	minPitch, maxPitch := batch[0].Pitch, batch[0].Pitch
	var sumPitch float64
	for _, n := range batch {
		weight := n.Length
		if weight <= 0 {
			weight = 0.1
		}
		f.PitchClasses[n.Pitch%model.NumPitchClasses] += float32(weight)
		total += weight
		sumPitch += float64(n.Pitch)
		if n.Pitch < minPitch {
			minPitch = n.Pitch
		}
		if n.Pitch > maxPitch {
			maxPitch = n.Pitch
		}
	}
	for i := range f.PitchClasses {
		f.PitchClasses[i] /= float32(total)
	}
	f.MeanPitch = float32(sumPitch / float64(len(batch)))
	f.PitchRange = float32(maxPitch - minPitch)
	f.NoteCount = uint32(len(batch))
	return f
}

// ChordFeature maps a set of pitches to the same pitch-class space the
// library records live in.
func ChordFeature(notes []uint8) [model.NumPitchClasses]float32 {
	var res [model.NumPitchClasses]float32
	if len(notes) == 0 {
		return res
	}
	for _, n := range notes {
		res[n%model.NumPitchClasses] += 1
	}
	for i := range res {
		res[i] /= float32(len(notes))
	}
	return res
}

// Cosine is the cosine similarity of two pitch-class vectors, 0 when
// either is all zeros.
func Cosine(a, b [model.NumPitchClasses]float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
