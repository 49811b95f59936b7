package coroutine

// Executor advances independent tasks together, one step each per tick.
//
// An Executor is driven from a single goroutine; it is not safe for
// concurrent use. Tasks may be added from inside a running task: they are
// kept and first advanced on the following Resume.
type Executor struct {
	tasks []Resumable
}

// NewExecutor creates an empty executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Add schedules r.
func (e *Executor) Add(r Resumable) {
	e.tasks = append(e.tasks, r)
}

// Go schedules a new task for routine and returns it.
func (e *Executor) Go(routine Routine) *Task {
	t := NewTask(routine)
	e.Add(t)
	return t
}

// Resume advances every held task by one step, then drops the tasks that
// have ended.
func (e *Executor) Resume() {
	n := len(e.tasks)
	for i := 0; i < n; i++ {
		e.tasks[i].Resume()
	}

	kept := e.tasks[:0]
	for _, t := range e.tasks {
		if !t.Ended() {
			kept = append(kept, t)
		}
	}
	clear(e.tasks[len(kept):])
	e.tasks = kept
}

// Len returns the number of live tasks.
func (e *Executor) Len() int {
	return len(e.tasks)
}

// Stop abandons every task. Tasks implementing [Stopper] are stopped.
func (e *Executor) Stop() {
	for _, t := range e.tasks {
		if s, ok := t.(Stopper); ok {
			s.Stop()
		}
	}
	clear(e.tasks)
	e.tasks = e.tasks[:0]
}
