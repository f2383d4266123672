package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/midifile"
	"github.com/jsphweid/bopwire/midiport"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/recorder"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var (
	listenPortNo  int
	listenOutNo   int
	listenTagged  bool
	listenPPQ     uint32
	listenChannel uint8
	listenSaveDir string
)

func init() {
	listenCmd.Flags().IntVar(&listenPortNo, "port", 0, "MIDI input port number")
	listenCmd.Flags().IntVar(&listenOutNo, "out-port", -1, "MIDI output port for recording (-1 = save only)")
	listenCmd.Flags().BoolVar(&listenTagged, "tagged", false, "expect 7-symbol records")
	listenCmd.Flags().Uint32Var(&listenPPQ, "ppq", 96, "host pulses per quarter note")
	listenCmd.Flags().Uint8Var(&listenChannel, "channel", 0, "channel for untagged notes")
	listenCmd.Flags().StringVar(&listenSaveDir, "save-dir", "", "where to save received batches (default data dir)")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receives batches from a MIDI port and records them",
	Long:  `Receives batches from a MIDI port and records them`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

func saveBatch(batch model.Batch) {
	dir := listenSaveDir
	if dir == "" {
		dir = constants.GetDataDir()
	}
	os.MkdirAll(dir, 0777)
	path := filepath.Join(dir, uuid.New().String()+".mid")
	if err := midifile.WriteBatch(path, batch, constants.GetDefaultTempo()); err != nil {
		fmt.Printf("Could not save batch: %v\n", err)
		return
	}
	fmt.Printf("Saved %v notes to %v\n", len(batch), path)
}

func listen() {
	defer midi.CloseDriver()

	var rec *recorder.Recorder
	if listenOutNo >= 0 {
		out, err := midiport.OpenOut(listenOutNo)
		if err != nil {
			panic("Could not open MIDI out port: " + err.Error())
		}
		rec = recorder.New(midiport.NewTransport(out, listenPPQ), recorder.Options{
			DefaultTempoBPM: constants.GetDefaultTempo(),
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	onBatch := func(batch model.Batch) {
		fmt.Printf("Received a batch of %v notes\n", len(batch))
		if len(batch) == 0 {
			return
		}
		saveBatch(batch)
		if rec != nil {
			if err := rec.Record(ctx, batch, listenChannel); err != nil {
				fmt.Printf("Recording interrupted: %v\n", err)
			}
		}
	}

	stop, err := midiport.Listen(listenPortNo, listenTagged, onBatch)
	if err != nil {
		panic("Could not listen on MIDI in port: " + err.Error())
	}
	defer stop()

	fmt.Println("Listening... press ctrl-c to quit")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	cancel()
}
