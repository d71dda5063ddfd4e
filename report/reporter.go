package report

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user while the driver runs.  The reporter respects the set
// log level and is synchronized.
type Reporter struct {
	// The mutex used to synchonize different report calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors and warnings reported so far.
	errorCount, warningCount int

	// toolLog is the structured logger used to trace tool invocations.
	toolLog *log.Logger
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all driver messages to the user (default).
)

// logLevelNames maps the user-facing log level names to log levels.
var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// ParseLogLevel converts a log level name into an enumerated log level.
func ParseLogLevel(name string) (int, bool) {
	level, ok := logLevelNames[name]
	return level, ok
}

// rep is the global reporter instance.
var rep = newReporter(LogLevelVerbose, os.Stderr)

// out is where all reporter output other than the phase spinner is written.
// Standard output is reserved for emitted artifacts.
var out io.Writer = os.Stderr

// InitReporter (re)initializes the global reporter to the given log level.
func InitReporter(logLevel int) {
	rep = newReporter(logLevel, out)
}

// SetOutput redirects reporter output and reinitializes the reporter at its
// current log level.
func SetOutput(w io.Writer) {
	out = w
	rep = newReporter(rep.logLevel, w)
}

func newReporter(logLevel int, w io.Writer) *Reporter {
	toolLog := log.NewWithOptions(w, log.Options{Prefix: "alanc"})
	switch logLevel {
	case LogLevelSilent:
		toolLog.SetOutput(io.Discard)
	case LogLevelVerbose:
		toolLog.SetLevel(log.DebugLevel)
	default:
		toolLog.SetLevel(log.ErrorLevel)
	}

	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		toolLog:  toolLog,
	}
}

// CurrentLogLevel returns the log level of the global reporter.
func CurrentLogLevel() int {
	return rep.logLevel
}

// ToolLogger returns the structured logger used to trace tool invocations.
func ToolLogger() *log.Logger {
	return rep.toolLog
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}
