package logging

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm/logger"
)

type gormWriter struct{ l *slog.Logger }

func (w gormWriter) Printf(format string, args ...any) {
	w.l.Warn(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}

// Gorm returns a GORM logger that reports slow queries and errors through l.
func Gorm(l *slog.Logger) logger.Interface {
	return logger.New(gormWriter{l: l}, logger.Config{
		SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
