package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reporter 定时任务执行的巡检
type Reporter interface {
	Report(ctx context.Context) error
}

type Scheduler struct {
	c        *cron.Cron
	log      *zap.Logger
	reporter Reporter
	schedule string
	timeout  time.Duration
}

// NewScheduler 使用标准 5 段 cron 表达式
func NewScheduler(log *zap.Logger, reporter Reporter, schedule string) *Scheduler {
	return &Scheduler{
		c:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:      log,
		reporter: reporter,
		schedule: schedule,
		timeout:  30 * time.Second,
	}
}

// Start 注册任务并启动，ctx 结束时停止调度
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.c.AddFunc(s.schedule, func() { s.run(ctx) }); err != nil {
		return err
	}
	s.c.Start()
	s.log.Info("Maintenance scheduler started", zap.String("schedule", s.schedule))

	go func() {
		<-ctx.Done()
		<-s.Stop().Done()
	}()
	return nil
}

// Stop 停止调度，返回的 context 在运行中的任务结束后完成
func (s *Scheduler) Stop() context.Context {
	return s.c.Stop()
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.reporter.Report(ctx); err != nil {
		s.log.Warn("Maintenance report failed", zap.Error(err))
	}
}
