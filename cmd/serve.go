package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/bopwire/bebop"
	"github.com/jsphweid/bopwire/constants"
	"github.com/jsphweid/bopwire/db"
	"github.com/jsphweid/bopwire/library"
	"github.com/jsphweid/bopwire/midiport"
	"github.com/jsphweid/bopwire/model"
	"github.com/jsphweid/bopwire/util"
	"github.com/jsphweid/bopwire/wire"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	servePortNo int
	serveNoMidi bool

	serveOut      *midiport.Out
	serveFeatures []model.LickFeature
	serveFileMap  model.FileNumToMidiPath
)

func init() {
	serveCmd.Flags().IntVar(&servePortNo, "port", 0, "MIDI output port number")
	serveCmd.Flags().BoolVar(&serveNoMidi, "no-midi", false, "serve without a MIDI out port")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the play/generate/similar HTTP API",
	Long:  `Serves the play/generate/similar HTTP API`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles loads the library database so /similar can answer.
// Split out so tests can prime state without running the server.
func LoadServeFiles() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("No library database loaded: %v\n", r)
		}
	}()
	serveFeatures = library.Load()
	serveFileMap = util.ReadBinaryOrPanic[model.FileNumToMidiPath](util.GetFileNumToNamePath())
}

func writeError(w http.ResponseWriter, detail string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

func sendSymbols(syms []uint8) error {
	if serveOut == nil {
		return nil
	}
	return serveOut.SendStream(context.Background(), syms, constants.SymbolDelay)
}

func HandlePlay(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Could not read request body", 400)
		return
	}

	var input model.PlayRequestBody
	err = json.Unmarshal(reqBody, &input)
	if err != nil {
		writeError(w, "Could not unmarshal request body: "+err.Error(), 400)
		return
	}
	if len(input.Notes) == 0 {
		writeError(w, "No notes to play", 400)
		return
	}

	batch := make(model.Batch, 0, len(input.Notes))
	tagged := false
	for _, n := range input.Notes {
		note := n.ToNote()
		if note.Tagged() {
			tagged = true
		}
		batch = append(batch, note)
	}

	var syms []uint8
	var truncated bool
	if tagged {
		syms, truncated = wire.EncodeTagged(batch)
	} else {
		syms, truncated = wire.Encode(batch)
	}

	if err := sendSymbols(syms); err != nil {
		writeError(w, "Send failed: "+err.Error(), 502)
		return
	}
	json.NewEncoder(w).Encode(model.PlayResponse{Sent: len(syms), Truncated: truncated})
}

func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Could not read request body", 400)
		return
	}

	var input model.GenerateRequestBody
	err = json.Unmarshal(reqBody, &input)
	if err != nil {
		writeError(w, "Could not unmarshal request body: "+err.Error(), 400)
		return
	}
	if input.Root == 0 {
		input.Root = 60
	}
	if input.Complexity == 0 {
		input.Complexity = 0.7
	}
	if input.Scale == "" {
		input.Scale = "Bebop_Dominant"
	}
	if input.Progression == "" {
		input.Progression = "ii-V-I"
	}

	g := bebop.NewGenerator(input.Root, time.Now().UnixNano())
	if input.Measures > 0 {
		g.Measures = input.Measures
	}
	solo := g.Solo(input.Scale, input.Complexity, 2)
	comping := g.Comping(input.Progression, input.Complexity)

	if input.Send {
		// solo on channel 0, comping on channel 1
		merged := make(model.Batch, 0, len(solo)+len(comping))
		for _, n := range solo {
			n.Channel = 0
			merged = append(merged, n)
		}
		for _, n := range comping {
			n.Channel = 1
			merged = append(merged, n)
		}
		syms, _ := wire.EncodeTagged(merged)
		if err := sendSymbols(syms); err != nil {
			writeError(w, "Send failed: "+err.Error(), 502)
			return
		}
	}

	var res model.GenerateResponse
	for _, n := range solo {
		res.Solo = append(res.Solo, model.FromNote(n))
	}
	for _, n := range comping {
		res.Comping = append(res.Comping, model.FromNote(n))
	}
	json.NewEncoder(w).Encode(res)
}

// lookupMetadatas is best-effort: a missing metadata table shouldn't
// break similarity results.
func lookupMetadatas(filenames []string) (res map[string]model.LickMetadata) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
		}
	}()
	return db.GetLickMetadatas(filenames)
}

func HandleSimilar(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Could not read request body", 400)
		return
	}

	var input model.SimilarRequestBody
	err = json.Unmarshal(reqBody, &input)
	if err != nil {
		writeError(w, "Could not unmarshal request body: "+err.Error(), 400)
		return
	}
	if len(input.Notes) == 0 {
		writeError(w, "No notes to match against", 400)
		return
	}
	if len(serveFeatures) == 0 {
		writeError(w, "No library database; run `bopwire build` first", 503)
		return
	}

	matches := library.FindSimilar(serveFeatures, input.Notes, input.TopK)

	var filenames []string
	for _, m := range matches {
		if path, ok := serveFileMap[m.FileNum]; ok {
			filenames = append(filenames, filepath.Base(path))
		}
	}
	metadatas := lookupMetadatas(filenames)

	res := model.SimilarResponse{Matches: make([]model.SimilarMatch, 0, len(matches))}
	for _, m := range matches {
		sm := model.SimilarMatch{Score: m.Score}
		if path, ok := serveFileMap[m.FileNum]; ok {
			sm.Filename = filepath.Base(path)
			if meta, ok := metadatas[sm.Filename]; ok {
				metaCopy := meta
				sm.LickMetadata = &metaCopy
			}
		}
		res.Matches = append(res.Matches, sm)
	}
	json.NewEncoder(w).Encode(res)
}

func serve() {
	LoadServeFiles()

	if !serveNoMidi {
		out, err := midiport.OpenOut(servePortNo)
		if err != nil {
			panic("Could not open MIDI out port: " + err.Error())
		}
		serveOut = out
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/play", HandlePlay).Methods("POST")
	router.HandleFunc("/generate", HandleGenerate).Methods("POST")
	router.HandleFunc("/similar", HandleSimilar).Methods("POST")

	handler := cors.Default().Handler(router)
	addr := constants.GetHTTPAddr()
	fmt.Printf("Serving on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
