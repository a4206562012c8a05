package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Job cron driven background job
type Job interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of work
type OnWork func(ctx context.Context) error

// BaseJob runs OnWork on the cron schedule, skipping ticks while a round is still running
type BaseJob struct {
	Name    string
	Cron    *cron.Cron
	OnWork  OnWork
	running int32
}

// Init schedules the job with spec in location
func (job *BaseJob) Init(name, location, spec string, onWork OnWork) error {
	l, err := time.LoadLocation(location)
	if err != nil {
		return err
	}

	job.Name = name
	job.OnWork = onWork
	job.Cron = cron.New(cron.WithLocation(l))
	_, err = job.Cron.AddFunc(spec, job.Run)
	return err
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	log := logger.FromContext(context.Background()).WithField("worker", job.Name)
	ctx := logger.WithContext(context.Background(), log)
	if err := job.OnWork(ctx); err != nil {
		log.WithError(err).Errorln("run")
	}
}
