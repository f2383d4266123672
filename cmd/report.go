package cmd

import (
	"fmt"

	"github.com/jsphweid/bopwire/library"
	"github.com/jsphweid/bopwire/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report on the library database",
	Long:  `Creates a report on the library database`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

type libraryReport struct {
	numLicks     int64
	numNotes     int64
	meanPitchSum float64
	pitchClasses [model.NumPitchClasses]float64
}

func analyzeLibrary(features []model.LickFeature) libraryReport {
	var report libraryReport
	for _, f := range features {
		report.numLicks += 1
		report.numNotes += int64(f.NoteCount)
		report.meanPitchSum += float64(f.MeanPitch)
		for i, v := range f.PitchClasses {
			report.pitchClasses[i] += float64(v)
		}
	}
	return report
}

var pitchClassNames = [model.NumPitchClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

func report() {
	features := library.Load()
	r := analyzeLibrary(features)

	fmt.Printf("licks: %v\n", r.numLicks)
	fmt.Printf("notes: %v\n", r.numNotes)
	if r.numLicks > 0 {
		fmt.Printf("mean pitch across licks: %.1f\n", r.meanPitchSum/float64(r.numLicks))
		fmt.Println("aggregate pitch-class weight:")
		for i, v := range r.pitchClasses {
			fmt.Printf("  %-2v %.3f\n", pitchClassNames[i], v/float64(r.numLicks))
		}
	}
}
