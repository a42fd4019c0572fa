package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
	"github.com/qdm12/log"
)

type Logger struct {
	Level *log.Level
	// Directory is where rotated log files are written.
	// Leave empty to only log to the standard output.
	Directory *string
}

func (l *Logger) setDefaults() {
	l.Level = gosettings.DefaultPointer(l.Level, log.LevelInfo)
	l.Directory = gosettings.DefaultPointer(l.Directory, "")
}

func (l Logger) Validate() (err error) {
	return nil
}

func (l Logger) ToOptions() []log.Option {
	return []log.Option{
		log.SetLevel(*l.Level),
	}
}

func (l Logger) String() string {
	return l.toLinesNode().String()
}

func (l Logger) toLinesNode() *gotree.Node {
	node := gotree.New("Logger")
	node.Appendf("Level: %s", *l.Level)
	if *l.Directory != "" {
		node.Appendf("Directory: %s", *l.Directory)
	}
	return node
}

var ErrLogLevelUnknown = errors.New("log level is unknown")

func (l *Logger) read(r *reader.Reader) (err error) {
	levelString := r.String("LOG_LEVEL")
	if levelString != "" {
		level, err := parseLogLevel(levelString)
		if err != nil {
			return fmt.Errorf("environment variable LOG_LEVEL: %w", err)
		}
		l.Level = &level
	}

	l.Directory = r.Get("LOG_DIRECTORY", reader.ForceLowercase(false))
	return nil
}

func parseLogLevel(s string) (level log.Level, err error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return level, fmt.Errorf(
			"%w: %q is not valid and can be one of debug, info, warning or error",
			ErrLogLevelUnknown, s)
	}
}
