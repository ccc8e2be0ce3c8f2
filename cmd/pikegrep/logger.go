package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the console logger described by o. Logs go to stderr,
// or to a size-rotated file when o.LogFile is set. The returned function
// flushes and closes the sink.
func newLogger(o *options, stderr io.Writer) (*zap.Logger, func(), error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return nil, nil, errors.Wrapf(err, "log.level %q", o.LogLevel)
	}

	var sink zapcore.WriteSyncer
	var closer io.Closer
	if o.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename: o.LogFile,
			MaxSize:  o.LogMaxSizeMB,
		}
		sink, closer = zapcore.AddSync(rotator), rotator
	} else {
		sink = zapcore.AddSync(stderr)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)
	logger := zap.New(core).Named("pikegrep")

	return logger, func() {
		_ = logger.Sync()
		if closer != nil {
			_ = closer.Close()
		}
	}, nil
}
