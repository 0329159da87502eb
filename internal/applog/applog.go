// Package applog configures the standard logger.
package applog

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"Code-Assistant/internal/config"
)

// Setup sends log output to stderr and, when cfg.File is set, to a
// rotating file as well. The returned closer releases the file and
// points the logger back at stderr.
func Setup(cfg config.LogConfig) io.Closer {
	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return fileCloser{rotator: rotator}
}

type fileCloser struct{ rotator *lumberjack.Logger }

// Close は lumberjack が書き込みで再オープンしないよう、先に出力先を戻します。
func (c fileCloser) Close() error {
	log.SetOutput(os.Stderr)
	return c.rotator.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
