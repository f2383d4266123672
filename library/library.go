// Package library maintains a feature database over a folder of midi
// licks and answers "what sounds like this chord" queries against it.
package library

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/midifile"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/util"
)

// Overview points the loader at the current snapshot file.
type Overview struct {
	SnapshotFilename string
	NumRecords       int
}

// CreateFileNumMap numbers midi paths so feature records can refer to
// them compactly.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// Match is one similarity result.
type Match struct {
	FileNum uint32
	Score   float64
}

func appendFeature(f *os.File, feature model.LickFeature) {
	b := Serialize(feature)
	if _, err := f.Write(b); err != nil {
		panic("Could not write feature to snapshot because: " + err.Error())
	}
}

// BuildAll analyzes every midi file in the map into a fresh
// uuid-named snapshot and records the overview. Files that fail to
// parse are skipped with a note.
func BuildAll(m model.FileNumToMidiPath) Overview {
	var o Overview
	o.SnapshotFilename = uuid.New().String() + ".dat"

	path := filepath.Join(constants.GetDataDir(), o.SnapshotFilename)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0777)
	if err != nil {
		panic("Could not open snapshot because: " + err.Error())
	}
	defer f.Close()

	keys := util.GetKeys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for i, num := range keys {
		fmt.Printf("Analyzing %v of %v midi files\n", i+1, len(keys))
		batch, err := midifile.ReadBatch(m[num])
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", m[num], err)
			continue
		}
		appendFeature(f, Analyze(batch, num))
		o.NumRecords++
	}

	util.CreateBinary(util.GetLibraryPath(), o)
	return o
}

// Load reads every feature record of the current snapshot.
func Load() []model.LickFeature {
	o := util.ReadBinaryOrPanic[Overview](util.GetLibraryPath())
	path := filepath.Join(constants.GetDataDir(), o.SnapshotFilename)

	var res []model.LickFeature
	snapFile := util.OpenFileOrPanic(path)
	defer snapFile.Close()
	snapReader := bufio.NewReader(snapFile)
	for {
		buf := make([]byte, FeatureSize)
		_, err := io.ReadFull(snapReader, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			panic("Could not read feature from snapshot: " + err.Error())
		}
		res = append(res, Deserialize(buf))
	}
	return res
}

// FindSimilar ranks library records by pitch-class similarity to the
// given chord and returns the topK best.
func FindSimilar(features []model.LickFeature, notes []uint8, topK int) []Match {
	if topK <= 0 {
		topK = 3
	}
	target := ChordFeature(notes)

	matches := make([]Match, 0, len(features))
	for _, f := range features {
		matches = append(matches, Match{
			FileNum: f.FileNum,
			Score:   Cosine(f.PitchClasses, target),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}
