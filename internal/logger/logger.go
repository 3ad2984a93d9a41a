package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

var (
	debugMode bool
	logger    = log.New(os.Stdout, "", log.LstdFlags)
)

func SetDebugMode(debug bool) {
	debugMode = debug
	if debug {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
		Info("Debug mode enabled - detailed logging activated")
	} else {
		logger.SetFlags(log.LstdFlags)
	}
}

// SetOutput redirects all log output, mostly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func IsDebugMode() bool {
	return debugMode
}

// output keeps the call depth pointing at the caller of Debug/Info/...
func output(level, format string, v ...interface{}) {
	logger.Output(3, fmt.Sprintf("["+level+"] "+format, v...))
}

func Debug(format string, v ...interface{}) {
	if debugMode {
		output("DEBUG", format, v...)
	}
}

func Info(format string, v ...interface{}) {
	output("INFO", format, v...)
}

func Warn(format string, v ...interface{}) {
	output("WARN", format, v...)
}

func Error(format string, v ...interface{}) {
	output("ERROR", format, v...)
}

func LogOperation(operation string, start time.Time, err error) {
	duration := time.Since(start)
	switch {
	case err != nil:
		Error("Operation '%s' failed after %v: %v", operation, duration, err)
	case debugMode:
		Debug("Operation '%s' completed in %v", operation, duration)
	default:
		Info("Operation '%s' completed", operation)
	}
}

func LogHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if debugMode {
		Debug("HTTP %s %s -> %d (%v)", method, path, statusCode, duration)
	} else {
		Info("HTTP %s %s -> %d", method, path, statusCode)
	}
}

// LogUpstreamRequest records a call to the Pinata API. statusCode is 0 when
// no response was received.
func LogUpstreamRequest(endpoint string, statusCode int, duration time.Duration, err error) {
	switch {
	case err != nil:
		Error("Pinata %s failed after %v: %v", endpoint, duration, err)
	case statusCode >= 300:
		Warn("Pinata %s -> %d (%v)", endpoint, statusCode, duration)
	default:
		Debug("Pinata %s -> %d (%v)", endpoint, statusCode, duration)
	}
}
