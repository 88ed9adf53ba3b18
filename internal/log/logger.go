package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

var (
	current atomic.Int32
	std     = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
)

func init() { current.Store(int32(Info)) }

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "err", "error":
		return Error
	default:
		return Info
	}
}

func SetLevel(l Level)    { current.Store(int32(l)) }
func CurrentLevel() Level { return Level(current.Load()) }

// SetOutput leitet die Ausgabe um (Tests). nil stellt stderr wieder her.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	std.SetOutput(w)
}

func enabled(l Level) bool { return CurrentLevel() <= l }

func Debugf(format string, v ...any) {
	if enabled(Debug) {
		std.Printf("[DEBUG] "+format, v...)
	}
}
func Infof(format string, v ...any) {
	if enabled(Info) {
		std.Printf("[INFO] "+format, v...)
	}
}
func Warnf(format string, v ...any) {
	if enabled(Warn) {
		std.Printf("[WARN] "+format, v...)
	}
}
func Errorf(format string, v ...any) {
	if enabled(Error) {
		std.Printf("[ERROR] "+format, v...)
	}
}

func InitFromEnvFallback(level string) {
	// Allow override via ENV if provided
	if env := os.Getenv("TASKWEB_LOG_LEVEL"); env != "" {
		level = env
	}
	SetLevel(ParseLevel(level))
}
