package constants

import (
	"os"
	"strconv"
	"time"
)

// Wire protocol alphabet. The channel can only carry note values 0-127,
// so the framing sentinels are stolen from the data alphabet: a real
// note at pitch 0 or 127 cannot be transmitted.
const (
	StartSentinel uint8 = 0
	EndSentinel   uint8 = 127

	MaxBatch = 127 // COUNT fits in one symbol

	RecordSize       = 6 // pitch vel len_whole len_dec pos_whole pos_dec
	TaggedRecordSize = 7 // + channel
)

// Recording defaults.
const (
	DefaultTempoBPM = 120.0
	MaxGroupWait    = 30 * time.Second
	SettleDelay     = 200 * time.Millisecond
)

// SymbolDelay is the recommended minimum pause between symbols on the
// sending side, so the host script keeps up.
const SymbolDelay = 10 * time.Millisecond

func GetDataDir() string {
	path := os.Getenv("BOPWIRE_DATA_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

func GetDefaultTempo() float64 {
	raw := os.Getenv("BOPWIRE_TEMPO")
	if raw != "" {
		if bpm, err := strconv.ParseFloat(raw, 64); err == nil && bpm > 0 {
			return bpm
		}
	}
	return DefaultTempoBPM
}

func GetHTTPAddr() string {
	addr := os.Getenv("BOPWIRE_HTTP_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}
