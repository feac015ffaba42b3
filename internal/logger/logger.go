package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the structured logger every component writes through. The
// component name is carried as a field so one stream can be filtered per stage.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// ParseLevel maps a level name to a zerolog level. Empty falls back to the
// LOG_LEVEL and DEBUG environment variables, then to info.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		name = os.Getenv("LOG_LEVEL")
	}

	switch strings.ToLower(name) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		if os.Getenv("DEBUG") == "1" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
}
