package log

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. Everything this tool prints is directed at a
// human sitting in front of a console, so it goes through the console writer.
var Log zerolog.Logger

func SetLevelDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}
func SetLevelInfo() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
}
