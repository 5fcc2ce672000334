package constants

import (
	"os"
	"strconv"
)

const DefaultPort = "8080"

const DefaultTempo = 120.0

func GetProgressionsPath() string {
	return os.Getenv("PROGRESSIONS_PATH")
}

func GetPort() string {
	port := os.Getenv("CHORDSEQ_PORT")
	if port != "" {
		return port
	}
	return DefaultPort
}

func GetTempo() float64 {
	tempo, err := strconv.ParseFloat(os.Getenv("CHORDSEQ_TEMPO"), 64)
	if err != nil || tempo <= 0 {
		return DefaultTempo
	}
	return tempo
}

func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

func GetEnvironment() string {
	env := os.Getenv("ENVIRONMENT")
	if env != "" {
		return env
	}
	return "development"
}
