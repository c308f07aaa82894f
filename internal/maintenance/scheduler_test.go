package maintenance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingReporter struct {
	calls atomic.Int32
	err   error
}

func (r *countingReporter) Report(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(zap.NewNop(), &countingReporter{}, "not a schedule")
	assert.Error(t, s.Start(context.Background()))
}

func TestRunLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reporter := &countingReporter{err: errors.New("store down")}
	s := NewScheduler(zap.New(core), reporter, "*/10 * * * *")

	s.run(context.Background())

	assert.Equal(t, int32(1), reporter.calls.Load())
	assert.Equal(t, 1, logs.FilterMessage("Maintenance report failed").Len())
}

func TestStartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(zap.NewNop(), &countingReporter{}, "@every 1h")
	assert.NoError(t, s.Start(ctx))
	assert.Len(t, s.c.Entries(), 1)

	<-s.Stop().Done()
}
