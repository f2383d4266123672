package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jsphweid/bopwire/bebop"
	"github.com/jsphweid/bopwire/midifile"
	"github.com/jsphweid/bopwire/midiport"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/wire"
	"github.com/spf13/cobra"
)

var (
	sendPortNo     int
	sendFile       string
	sendTagged     bool
	sendDelay      time.Duration
	sendScale      string
	sendProg       string
	sendComplexity float64
	sendMeasures   int
	sendRoot       uint8
	sendSeed       int64
	sendComping    bool
	sendPreview    int
)

func init() {
	sendCmd.Flags().IntVar(&sendPortNo, "port", 0, "MIDI output port number")
	sendCmd.Flags().StringVar(&sendFile, "file", "", "midi file to send instead of generating")
	sendCmd.Flags().BoolVar(&sendTagged, "tagged", false, "use 7-symbol records carrying per-note channels")
	sendCmd.Flags().DurationVar(&sendDelay, "delay", 10*time.Millisecond, "inter-symbol delay")
	sendCmd.Flags().StringVar(&sendScale, "scale", "Bebop_Dominant", "bebop scale for the solo")
	sendCmd.Flags().StringVar(&sendProg, "progression", "ii-V-I", "chord progression for comping")
	sendCmd.Flags().Float64Var(&sendComplexity, "complexity", 0.7, "generator complexity 0-1")
	sendCmd.Flags().IntVar(&sendMeasures, "measures", 4, "measures to generate")
	sendCmd.Flags().Uint8Var(&sendRoot, "root", 60, "root note")
	sendCmd.Flags().Int64Var(&sendSeed, "seed", 0, "generator seed (0 = current time)")
	sendCmd.Flags().BoolVar(&sendComping, "comping", false, "also generate chord comping (forces tagged records)")
	sendCmd.Flags().IntVar(&sendPreview, "preview", 0, "send at most N notes")
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Encodes a batch and paces it out a MIDI port",
	Long:  `Encodes a batch and paces it out a MIDI port`,
	Run: func(cmd *cobra.Command, args []string) {
		send()
	},
}

func buildBatch() model.Batch {
	if sendFile != "" {
		batch, err := midifile.ReadBatch(sendFile)
		if err != nil {
			panic("Could not read midi file: " + err.Error())
		}
		return batch
	}

	seed := sendSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := bebop.NewGenerator(sendRoot, seed)
	g.Measures = sendMeasures

	batch := g.Solo(sendScale, sendComplexity, 2)
	if sendComping {
		// solo on channel 0, comping on channel 1
		for i := range batch {
			batch[i].Channel = 0
		}
		for _, n := range g.Comping(sendProg, sendComplexity) {
			n.Channel = 1
			batch = append(batch, n)
		}
		sendTagged = true
	}
	return batch
}

func send() {
	batch := buildBatch()
	if sendPreview > 0 {
		batch = midifile.Preview(batch, 0, sendPreview)
	}

	var syms []uint8
	var truncated bool
	if sendTagged {
		syms, truncated = wire.EncodeTagged(batch)
	} else {
		syms, truncated = wire.Encode(batch)
	}
	if truncated {
		fmt.Printf("Batch has %v notes, only the first 127 will be sent\n", len(batch))
	}

	out, err := midiport.OpenOut(sendPortNo)
	if err != nil {
		panic("Could not open MIDI out port: " + err.Error())
	}

	fmt.Printf("Sending %v symbols...\n", len(syms))
	if err := out.SendStream(context.Background(), syms, sendDelay); err != nil {
		panic("Send failed: " + err.Error())
	}
	fmt.Println("Done")
}
