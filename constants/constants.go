package constants

import (
	"os"
	"time"

	"github.com/jsphweid/voicelead/model"
)

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func GetOutputDir() string {
	return getEnv("VOICELEAD_OUTPUT_DIR", "./output")
}

// GetMidiPort is matched as a substring of the output port name.
func GetMidiPort() string {
	return getEnv("VOICELEAD_MIDI_PORT", "FluidSynth virtual port")
}

func GetAddr() string {
	return getEnv("VOICELEAD_ADDR", ":8080")
}

func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

// guitar range
var DefaultRange = model.Range{Min: 40, Max: 90}

const (
	ChordDuration = 500 * time.Millisecond
	PauseDuration = 100 * time.Millisecond
	MidiVelocity  = 127

	FileVelocity    = 64
	Tempo           = 120.0
	TicksPerQuarter = 480
)
