package unittest

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var verbose = flag.Bool("vv", false, "print debugging logs")

// Logger returns a zerolog
// use -vv flag to print debugging logs for tests
func Logger() zerolog.Logger {
	writer := io.Discard

	if *verbose {
		writer = os.Stderr
	}
	return LoggerWithWriter(writer)
}

// LoggerWithWriter returns a debug level JSON logger writing to w, for tests
// that inspect log output.
func LoggerWithWriter(w io.Writer) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
