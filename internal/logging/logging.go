// Package logging holds the process-wide zap logger used by the enumily CLI
// and catalog loader. The logger is a no-op until InitializeWriter is called,
// so packages may log unconditionally.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by InitializeWriter.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Standard field names.
const (
	FieldEnum    = "enum"
	FieldParent  = "parent"
	FieldFile    = "file"
	FieldCount   = "count"
	FieldCommand = "command"
	FieldError   = "error"
)

// Logger is the global logger.
var Logger = zap.NewNop().Sugar()

// InitializeWriter installs a logger writing to w. Verbose enables debug
// level; otherwise only warnings and errors are emitted.
func InitializeWriter(w io.Writer, format string, verbose bool) error {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	switch format {
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return fmt.Errorf("unknown log format %q (valid: %s, %s)", format, FormatConsole, FormatJSON)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	Logger = zap.New(core).Sugar()
	return nil
}

// Sync flushes buffered log entries. Errors are ignored; stderr does not
// support fsync on every platform.
func Sync() {
	_ = Logger.Sync()
}
