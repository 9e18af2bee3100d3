package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to stderr. Unknown levels fall back to
// info; debug forces the debug level.
func New(level string, debug bool) *zap.Logger {
	return newLogger(os.Stderr, level, debug)
}

func newLogger(w io.Writer, level string, debug bool) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	if debug {
		lvl = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	if !debug {
		enc.CallerKey = ""
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)

	opts := []zap.Option{}
	if debug {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}

// Error returns a zap.Field for err.
func Error(err error) zap.Field { return zap.Error(err) }

// Post returns the fields identifying a post in log lines.
func Post(id int64, filename string) zap.Field {
	return zap.Dict("post", zap.Int64("id", id), zap.String("filename", filename))
}
