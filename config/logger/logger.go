// Package logger builds the zerolog streams written next to the logrus
// application log: one set for the database bootstrap and one for live
// room connections.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006-01-02 15:04:05.000"

type CommonLogger struct {
	Info    zerolog.Logger
	Error   zerolog.Logger
	Trace   zerolog.Logger
	Warning zerolog.Logger
}

type AppLogger struct {
	DB CommonLogger
	WS CommonLogger
}

// NewAppLogger writes every stream to stdout and to a rotated file under dir.
func NewAppLogger(dir string) *AppLogger {
	if dir == "" {
		dir = "logs"
	}
	_ = os.MkdirAll(dir, 0o755)

	zerolog.TimeFieldFormat = timeFormat
	console := consoleConfWriter()

	stream := func(name string) zerolog.Logger {
		return newMultiLogger(console, filepath.Join(dir, name))
	}

	return &AppLogger{
		DB: CommonLogger{
			Info:    stream("db.info.log"),
			Error:   stream("db.error.log"),
			Trace:   stream("db.trace.log"),
			Warning: stream("db.warning.log"),
		},
		WS: CommonLogger{
			Info:    stream("ws.info.log"),
			Error:   stream("ws.error.log"),
			Trace:   stream("ws.trace.log"),
			Warning: stream("ws.warning.log"),
		},
	}
}

// Nop discards everything; used by tests.
func Nop() *AppLogger {
	nop := zerolog.Nop()
	common := CommonLogger{Info: nop, Error: nop, Trace: nop, Warning: nop}
	return &AppLogger{DB: common, WS: common}
}

func newMultiLogger(console zerolog.ConsoleWriter, path string) zerolog.Logger {
	multi := io.MultiWriter(console, fileConsoleWriter(path))
	return zerolog.New(multi).With().Timestamp().Logger()
}

func formatLevel(i interface{}) string {
	level, _ := i.(string)
	return fmt.Sprintf("[%s]", strings.ToUpper(level))
}

func formatTimestamp(i interface{}) string {
	return fmt.Sprintf("[%s]", i)
}

func consoleConfWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:             os.Stdout,
		TimeFormat:      timeFormat,
		FormatTimestamp: formatTimestamp,
		FormatLevel:     formatLevel,
	}
}

func fileConsoleWriter(path string) io.Writer {
	return zerolog.ConsoleWriter{
		Out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5,
			MaxAge:     20,
			MaxBackups: 5,
			Compress:   true,
		},
		NoColor:         true,
		TimeFormat:      timeFormat,
		FormatTimestamp: formatTimestamp,
		FormatLevel:     formatLevel,
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
	}
}
