package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"
)

var (
	errInvalidJob      = errors.New("invalid job")
	errInvalidInterval = errors.New("invalid interval")
)

// Orchestrator is the scheduler for registered jobs
type Orchestrator struct {
	logger *slog.Logger

	registeredJobs sync.Map

	q             iq.Queue[scheduledRun]
	queryInterval time.Duration
	retryDelay    time.Duration
	qMux          sync.Mutex
}

// New creates a new Orchestrator instance
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		q:             iq.NewQueue[scheduledRun](),
		queryInterval: time.Second,
		retryDelay:    10 * time.Second,
	}

	// Apply the options
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Register registers a new job with the orchestrator.
// The job is immediately queued up for execution
func (o *Orchestrator) Register(j Job) error {
	if j == nil || j.Name() == "" {
		return errInvalidJob
	}

	if j.Interval() <= 0 {
		return errInvalidInterval
	}

	id := xid.New()
	o.registeredJobs.Store(id, j)

	o.logger.Info(
		"registered new job",
		"name", j.Name(),
		"interval", j.Interval().String(),
	)

	o.scheduleRun(time.Now().UTC(), id, j)

	return nil
}

// Start starts the job orchestration service loop [BLOCKING]
func (o *Orchestrator) Start(ctx context.Context) error {
	collectorCh := make(chan *workerResponse, 100)

	ticker := time.NewTicker(o.queryInterval)
	defer ticker.Stop()

	// handleDue starts all jobs that are due
	handleDue := func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				next := o.nextRun()
				if next == nil {
					return // nothing is due
				}

				o.logger.Debug(
					"running job",
					"name", next.job.Name(),
				)

				info := &workerInfo{
					job:   next.job,
					jobID: next.jobID,
					resCh: collectorCh,
				}

				go handleJob(ctx, info)
			}
		}
	}

	// Run the first set of due jobs (on boot)
	handleDue()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("job orchestrator shut down")

			return nil
		case <-ticker.C:
			handleDue()
		case response := <-collectorCh:
			now := time.Now().UTC()

			raw, ok := o.registeredJobs.Load(response.jobID)
			if !ok {
				o.logger.Error(
					"unable to load registered job",
					"id", response.jobID.String(),
				)

				continue
			}

			j, _ := raw.(Job)

			if response.error != nil {
				o.logger.Error(
					"job run failed",
					"name", j.Name(),
					"id", response.jobID.String(),
					"err", response.error,
				)

				// Retry the job soon
				o.scheduleRun(now.Add(o.retryDelay), response.jobID, j)

				continue
			}

			o.logger.Info(
				"job run finished",
				"name", j.Name(),
				"duration", response.duration.String(),
			)

			o.scheduleRun(now.Add(j.Interval()), response.jobID, j)
		}
	}
}

// scheduleRun schedules a new job run
func (o *Orchestrator) scheduleRun(
	at time.Time,
	jobID xid.ID,
	j Job,
) {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	o.q.Push(scheduledRun{
		at:    at,
		jobID: jobID,
		job:   j,
	})
}

// nextRun fetches the next due run, as of the moment of calling
func (o *Orchestrator) nextRun() *scheduledRun {
	o.qMux.Lock()
	defer o.qMux.Unlock()

	if o.q.Len() == 0 {
		return nil // nothing to run, all jobs are running
	}

	if o.q.Index(0).at.After(time.Now().UTC()) {
		return nil // the earliest run is in the future
	}

	return o.q.PopFront()
}
