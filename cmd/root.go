package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bopwire",
	Short: "Bebop notes over a MIDI note channel",
	Long: `Generates bebop material, flattens note batches into a 7-bit
symbol stream that fits through a note-only MIDI channel, receives such
streams back, and drives recording on the host side.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
