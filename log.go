package armature

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Log is a global logrus instance reporting model edits and captures
var (
	Log *log.Logger
)

// Fields type, used to pass to `WithFields`. Forwarded from logrus library
type Fields = log.Fields

func init() {
	Log = &log.Logger{
		Out:          os.Stderr,
		Formatter:    &log.TextFormatter{DisableColors: false, FullTimestamp: true},
		Hooks:        make(log.LevelHooks),
		Level:        log.InfoLevel,
		ExitFunc:     os.Exit,
		ReportCaller: false,
	}
}

// ConfigureLogging selects between debug and info verbosity
func ConfigureLogging(debug bool) {
	Log.SetLevel(log.DebugLevel)
	if !debug {
		Log.SetLevel(log.InfoLevel)
	}
}
