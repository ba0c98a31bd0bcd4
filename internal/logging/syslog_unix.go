//go:build !windows && !plan9

package logging

import (
	"io"
	"log/syslog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// syslogCore writes info-and-above entries to LOCAL6, matching where the
// downtime scheduler has always reported.
func syslogCore(tag string) (zapcore.Core, io.Closer, error) {
	if tag == "" {
		tag = "admintools"
	}
	w, err := syslog.New(syslog.LOG_INFO|syslog.LOG_LOCAL6, tag)
	if err != nil {
		return nil, nil, err
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zapcore.NewCore(enc, zapcore.AddSync(w), zap.InfoLevel), w, nil
}
