package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"task-description-updater/internal/model"
	"task-description-updater/internal/task"
	pkgLog "task-description-updater/pkg/log"
)

// Poller runs fetch → transform → publish cycles over one list.
//
// A task is eligible when its creation time is at or after the watermark.
// After each eligible task the watermark moves to that task's creation
// time, whether or not the task was written.
type Poller struct {
	uc     task.UseCase
	cfg    Config
	l      pkgLog.Logger
	stdout io.Writer
	sleep  func(ctx context.Context, d time.Duration) error

	// written only by the goroutine running cycles, read by Status
	mu     sync.RWMutex
	status Status
}

// New creates a new Poller. Diagnostics for failed writes go to stdout.
func New(uc task.UseCase, cfg Config, l pkgLog.Logger, stdout io.Writer) *Poller {
	return &Poller{
		uc:     uc,
		cfg:    cfg,
		l:      l,
		stdout: stdout,
		sleep:  sleepContext,
		status: Status{ListID: cfg.ListID},
	}
}

// Run executes cfg.Cycles cycles separated by cfg.Interval. It returns nil
// after the last cycle or when ctx is cancelled, and the error of a failed
// task write, which ends the run.
func (p *Poller) Run(ctx context.Context) error {
	p.setRunning(true)
	defer p.setRunning(false)

	for i := 0; p.cfg.Cycles == 0 || i < p.cfg.Cycles; i++ {
		if i > 0 {
			if err := p.sleep(ctx, p.cfg.Interval); err != nil {
				p.l.Infof(ctx, "Poller stopped after %d cycles", i)
				return nil
			}
		}

		if _, err := p.RunOnce(ctx); err != nil {
			if errors.Is(err, task.ErrUpdateTask) {
				return err
			}
			if ctx.Err() != nil {
				p.l.Infof(ctx, "Poller stopped during cycle %d", i+1)
				return nil
			}
			// anything else only ends this cycle
			p.l.Errorf(ctx, "Cycle %d failed: %v", i+1, err)
		}
	}

	p.l.Infof(ctx, "Poller finished %d cycles", p.cfg.Cycles)
	return nil
}

// RunOnce executes a single cycle.
func (p *Poller) RunOnce(ctx context.Context) (CycleResult, error) {
	result := CycleResult{CycleID: uuid.NewString()}
	ctx = pkgLog.WithTraceID(ctx, result.CycleID)

	start := time.Now()
	p.l.Infof(ctx, "Checked for updated tasks at %s", start.Format(time.DateTime))

	err := p.cycle(ctx, &result)
	p.finishCycle(start, result, err)
	return result, err
}

func (p *Poller) cycle(ctx context.Context, result *CycleResult) error {
	tasks, err := p.uc.FetchTasks(ctx, p.cfg.ListID)
	if err != nil {
		return err
	}
	result.Fetched = len(tasks)

	for _, t := range tasks {
		watermark := p.Watermark()
		if t.DateCreated < watermark {
			p.l.Debugf(ctx, "Task %s created at %d is before watermark %d, skipping", t.ID, t.DateCreated, watermark)
			continue
		}
		result.Eligible++

		p.l.Infof(ctx, "Reading task: %q, %s", t.Name, t.ID)
		cleaned := p.uc.Transform(t)

		if cleaned.SameContent(t) {
			result.Unchanged++
			p.l.Infof(ctx, "Task update not needed for task %q, %s", t.Name, t.ID)
		} else {
			out, err := p.uc.Publish(ctx, task.PublishInput{Task: cleaned, Comment: p.cfg.Comment})
			if err != nil {
				p.reportWriteFailure(ctx, cleaned, err)
				return err
			}
			result.Updated++
			if out.CommentPosted {
				result.Commented++
			}
		}

		p.setWatermark(t.DateCreated)
		p.l.Infof(ctx, "Last update time changed to %d", t.DateCreated)
	}

	p.l.Infof(ctx, "Cycle done: fetched=%d eligible=%d updated=%d unchanged=%d",
		result.Fetched, result.Eligible, result.Updated, result.Unchanged)
	return nil
}

// reportWriteFailure prints the error and the task that caused it.
func (p *Poller) reportWriteFailure(ctx context.Context, t model.Task, err error) {
	payload, mErr := json.MarshalIndent(t, "", "  ")
	if mErr != nil {
		payload = []byte(fmt.Sprintf("%+v", t))
	}

	fmt.Fprintln(p.stdout, "===================== ERROR =====================")
	fmt.Fprintln(p.stdout, err)
	fmt.Fprintln(p.stdout, "===================== TASK WITH ERROR =====================")
	fmt.Fprintln(p.stdout, string(payload))

	p.l.Errorf(ctx, "Update of task %s failed, stopping: %v", t.ID, err)
}

// Watermark returns the creation time threshold for the next task.
func (p *Poller) Watermark() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status.Watermark
}

// Status returns a snapshot of the poller state.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Poller) setWatermark(ms int64) {
	p.mu.Lock()
	p.status.Watermark = ms
	p.mu.Unlock()
}

func (p *Poller) setRunning(running bool) {
	p.mu.Lock()
	p.status.Running = running
	p.mu.Unlock()
}

func (p *Poller) finishCycle(start time.Time, result CycleResult, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.CyclesRun++
	p.status.LastCycleStart = start
	p.status.LastCycleEnd = time.Now()
	p.status.LastCycle = result
	p.status.LastError = ""
	if err != nil {
		p.status.LastError = err.Error()
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
