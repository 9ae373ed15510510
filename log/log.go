// Package log provides the application loggers.
//
// The TUI owns the terminal, so everything is written to a log file in the
// temp directory. Enable debug mode with MASONRY_DEBUG=1 (see debug.go).
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
)

// Leveled loggers. They are usable before Initialize is called and discard
// everything until then.
var (
	InfoLog    *charmlog.Logger
	WarningLog *charmlog.Logger
	ErrorLog   *charmlog.Logger
)

var (
	globalLogFile *os.File
	logFileName   = filepath.Join(os.TempDir(), "masonry.log")
)

func init() {
	setLoggers(NewLogger(io.Discard, charmlog.InfoLevel))
}

// NewLogger creates a logger with timestamp formatting ("HH:MM:SS.ms").
func NewLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Initialize opens the log file and points the package loggers at it. When
// verbose is set the loggers also emit debug records.
func Initialize(verbose bool) {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}

	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		setLoggers(NewLogger(os.Stderr, level))
		ErrorLog.Error("could not open log file", "path", logFileName, "err", err)
		return
	}
	globalLogFile = f
	setLoggers(NewLogger(f, level))

	InitDebug()
}

// Close flushes debug output and closes the log file.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}

func setLoggers(base *charmlog.Logger) {
	InfoLog = base.WithPrefix("INFO")
	WarningLog = base.WithPrefix("WARNING")
	ErrorLog = base.WithPrefix("ERROR")
}
