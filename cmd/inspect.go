package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/bopwire/receiver"
	"github.com/spf13/cobra"
)

var inspectTagged bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectTagged, "tagged", false, "expect 7-symbol records")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Decodes a captured symbol dump",
	Long:  `Decodes a captured symbol dump`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

// inspect reads whitespace-separated decimal symbols from a file and
// runs them through a receive session, printing every decoded batch.
func inspect(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Couldn't read file: " + err.Error())
	}

	var syms []uint8
	for _, field := range strings.Fields(string(data)) {
		v, err := strconv.Atoi(field)
		if err != nil || v < 0 || v > 127 {
			panic("Not a symbol: " + field)
		}
		syms = append(syms, uint8(v))
	}

	sess := receiver.NewSession()
	if inspectTagged {
		sess = receiver.NewTaggedSession()
	}

	batches := receiver.FeedAll(sess, syms)
	for i, batch := range batches {
		fmt.Printf("batch %v: %v notes\n", i+1, len(batch))
		for _, n := range batch {
			fmt.Printf("  pitch=%v vel=%v length=%.1f position=%.1f", n.Pitch, n.Velocity, n.Length, n.Position)
			if n.Tagged() {
				fmt.Printf(" channel=%v", n.Channel)
			}
			fmt.Println()
		}
	}
	if sess.Mode() != receiver.ModeIdle {
		fmt.Println("warning: dump ends mid-transfer")
	}
}
