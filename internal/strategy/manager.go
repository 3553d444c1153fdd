package strategy

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/pkg/logger"
)

// Task is a handle on one launched strategy run.
type Task struct {
	ID   string
	Name string

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	report Report
	err    error
}

// Cancel requests the run to stop at its next checkpoint.
func (t *Task) Cancel() {
	t.cancel()
}

// Done closes when the run has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result returns the run's report and error. Valid once Done closes;
// before that it reflects progress so far.
func (t *Task) Result() (Report, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.report, t.err
}

func (t *Task) finish(report Report, err error) {
	t.mu.Lock()
	t.report = report
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

// Manager launches strategy runs as tracked background tasks instead
// of detached goroutines.
type Manager struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*Task
	wg    sync.WaitGroup
}

func NewManager() *Manager {
	return &Manager{tasks: make(map[string]*Task)}
}

// Launch starts runner in the background and returns its handle. The
// run inherits cancellation from ctx.
func (m *Manager) Launch(ctx context.Context, runner Runner) *Task {
	runCtx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.seq++
	task := &Task{
		ID:     fmt.Sprintf("%s-%d", runner.Name(), m.seq),
		Name:   runner.Name(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.tasks[task.ID] = task
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()

		report, err := runner.Execute(runCtx)
		task.finish(report, err)

		if err != nil {
			logger.Warn("strategy task finished with error",
				zap.String("task", task.ID),
				zap.Error(err),
			)
		} else {
			logger.Info("strategy task finished",
				zap.String("task", task.ID),
				zap.Int("placed", report.Placed),
				zap.Int("skipped", report.Skipped),
			)
		}
	}()

	return task
}

// Get returns a task handle by ID.
func (m *Manager) Get(id string) (*Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	return task, ok
}

// Tasks returns all known task handles, finished ones included.
func (m *Manager) Tasks() []*Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		out = append(out, task)
	}
	return out
}

// Shutdown cancels every task and waits for all runs to return.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for _, task := range m.tasks {
		task.cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
}
