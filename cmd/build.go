package cmd

import (
	"strconv"

	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/library"
	"github.com/jsphweid/bopwire/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the lick library database",
	Long:  `Builds the lick library database`,
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		Build(maxNum)
	},
}

// Build analyzes up to maxNum midi files from the media dir into a
// fresh library database (0 = no limit).
func Build(maxNum int) {
	util.RecreateDataDir()
	paths := util.GatherAllMidiPaths(constants.GetMediaDir(), maxNum)
	fileNumMap := library.CreateFileNumMap(paths)
	library.BuildAll(fileNumMap)
	util.CreateBinary(util.GetFileNumToNamePath(), fileNumMap)
}
