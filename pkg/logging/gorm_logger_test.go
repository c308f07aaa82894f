package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newObservedGormLogger(level logger.LogLevel) (logger.Interface, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func sqlFunc() (string, int64) {
	return "SELECT * FROM short_links WHERE short_code = 'abc123'", 0
}

func TestTraceSkipsRecordNotFound(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Warn)

	l.Trace(context.Background(), time.Now(), sqlFunc, gorm.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestTraceLogsFailures(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Error)

	l.Trace(context.Background(), time.Now(), sqlFunc, errors.New("duplicate entry"))

	entries := logs.FilterMessage("GORM SQL failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	}
}

func TestTraceWarnsSlowQueries(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Warn)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc, nil)

	assert.Equal(t, 1, logs.FilterMessage("GORM slow SQL").Len())
}

func TestTraceSilent(t *testing.T) {
	l, logs := newObservedGormLogger(logger.Info)
	l = l.LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc, errors.New("boom"))

	assert.Zero(t, logs.Len())
}

func TestToGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, ToGormLogLevel(zapcore.DebugLevel))
	assert.Equal(t, logger.Warn, ToGormLogLevel(zapcore.InfoLevel))
	assert.Equal(t, logger.Error, ToGormLogLevel(zapcore.ErrorLevel))
}
