package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// specs take an optional seconds field, so both "0 18 * * 1-5" and
// "0 0 18 * * 1-5" are accepted, as are descriptors such as "@daily".
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parse validates a cron spec.
func Parse(spec string) (cron.Schedule, error) {
	s, err := parser.Parse(spec)
	if err != nil {
		return nil, eris.Wrapf(err, "scheduler: parse %q", spec)
	}
	return s, nil
}

// Scheduler runs jobs on cron schedules. A job that is still running when
// its next tick arrives skips that tick.
type Scheduler struct {
	Cron *cron.Cron
	ctx  context.Context
	log  *zap.Logger
}

// New creates a Scheduler whose jobs run with ctx. A nil logger means the
// global zap logger.
func New(ctx context.Context, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.L()
	}
	log = log.Named("scheduler")
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		ctx: ctx,
		log: log,
	}
}

// Add registers job under name.
func (s *Scheduler) Add(name, spec string, job Job) (cron.EntryID, error) {
	if _, err := Parse(spec); err != nil {
		return 0, err
	}
	id, err := s.Cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return 0, eris.Wrapf(err, "scheduler: register %s", name)
	}
	return id, nil
}

// RunNow executes job immediately on the calling goroutine (for manual
// trigger / run on start).
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	s.log.Info("job started", zap.String("job", name))
	err := job(s.ctx)
	if err != nil {
		s.log.Error("job failed", zap.String("job", name), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return err
	}
	s.log.Info("job finished", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Next returns the next activation of an entry, or the zero time if the
// scheduler is not running.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.Cron.Entry(id).Next
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// cronLogger routes cron's own messages into zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
