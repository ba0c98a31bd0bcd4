package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "admintools.log"

// Options selects where log entries are written.
type Options struct {
	FilePath string
	Level    string
	Trace    bool
	// Syslog mirrors entries to the local syslog daemon under Tag.
	Syslog bool
	Tag    string
}

var (
	mu           sync.Mutex
	logger       = zap.NewNop()
	atomicLevel  = zap.NewAtomicLevel()
	traceEnabled bool
	logPath      = defaultLogFile
	// outputs are closed by the next Configure.
	outputs []io.Closer
)

type lumberjackSink struct {
	*lumberjack.Logger
}

func (lumberjackSink) Sync() error {
	return nil
}

// Configure builds the process logger. Empty paths fall back to the default
// file name; directories are created when missing. Stdout is never used since
// it carries report output.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	logPath = resolvePath(opts.FilePath)
	atomicLevel.SetLevel(parseLevel(opts.Level))
	traceEnabled = opts.Trace
	if traceEnabled {
		atomicLevel.SetLevel(zap.DebugLevel)
	}

	_ = logger.Sync()
	for _, c := range outputs {
		_ = c.Close()
	}
	sink := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    16, // megabytes
		MaxBackups: 1,
		MaxAge:     7, // days
	}
	outputs = []io.Closer{sink}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(lumberjackSink{sink}), atomicLevel),
	}
	if opts.Syslog {
		if core, w, err := syslogCore(opts.Tag); err != nil {
			fmt.Fprintf(os.Stderr, "syslog unavailable: %v\n", err)
		} else {
			cores = append(cores, core)
			outputs = append(outputs, w)
		}
	}
	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(logger)
}

func resolvePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return defaultLogFile
	}
	return path
}

func encoderConfig() zapcore.EncoderConfig {
	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.RFC3339TimeEncoder
	return conf
}

func parseLevel(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// L returns the configured logger, a no-op logger before Configure runs.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Path reports the active log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Flush syncs buffered entries.
func Flush() {
	_ = L().Sync()
}

// Error records err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	L().Error(err.Error())
}

// Info records a plain informational message.
func Info(msg string, fields ...zap.Field) {
	if msg == "" {
		return
	}
	L().Info(msg, fields...)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	if enabled {
		atomicLevel.SetLevel(zap.DebugLevel)
	}
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently emits anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace writes a structured debug entry when tracing is enabled.
func Trace(event string, payload map[string]interface{}) {
	if !TraceEnabled() {
		return
	}
	fields := make([]zap.Field, 0, len(payload)+1)
	fields = append(fields, zap.String("event", event))
	for k, v := range payload {
		fields = append(fields, zap.Any(k, v))
	}
	L().Debug("trace", fields...)
}
