// Package log configures the global application logger. This is the
// operator-facing console log; the per-sweep log sink is a separate,
// schema-locked logger owned by internal/record.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the global logger: always the console, plus a mirror file
// when mirrorPath is non-empty and writable.
func Init(mirrorPath string) {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.ANSIC,
		FormatLevel: func(i any) string {
			return colorizeLevel(i.(string))
		},
		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("> %s", i)
		},
	}

	writers := []io.Writer{consoleWriter}

	if mirrorPath != "" {
		if err := os.MkdirAll(filepath.Dir(mirrorPath), 0755); err != nil {
			log.Warn().Msgf("Could not create log directory for '%s', file logging disabled: %v", mirrorPath, err)
		} else {
			file, err := os.OpenFile(mirrorPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Warn().Msgf("Could not open log file '%s', file logging disabled: %v", mirrorPath, err)
			} else {
				writers = append(writers, file)
			}
		}
	}

	multi := zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// SetLevel sets the global logging level, falling back to info on garbage.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Invalid log level '%s'. Using 'info' level.", level)
		return
	}

	zerolog.SetGlobalLevel(parsed)
}

func colorizeLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "\033[36mDBG\033[0m"
	case "info":
		return "\033[32mINF\033[0m"
	case "warn":
		return "\033[33mWRN\033[0m"
	case "error":
		return "\033[31mERR\033[0m"
	case "fatal":
		return "\033[35mFTL\033[0m"
	default:
		return level
	}
}
