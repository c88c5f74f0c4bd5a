package logging

import (
	"io"
	"log"
	"os"
)

var (
	infoLogger  = log.New(os.Stderr, "INFO  ", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "ERROR ", log.LstdFlags)
)

// SetOutput redirects info and error messages, e.g. to a file or a test buffer.
func SetOutput(w io.Writer) {
	infoLogger.SetOutput(w)
	errorLogger.SetOutput(w)
}

// Infof logs an operational message
func Infof(format string, args ...interface{}) {
	infoLogger.Printf(format, args...)
}

// Errorf logs a failure that needs operator attention
func Errorf(format string, args ...interface{}) {
	errorLogger.Printf(format, args...)
}
