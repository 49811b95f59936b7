package coroutine

// Resumable is anything the Executor can drive.
type Resumable interface {
	Resume()
	Ended() bool
}

// Task drives a routine and the sub-routines it spawns.
type Task struct {
	stack   []Routine
	resumes int
}

// NewTask creates a task whose stack holds root. A nil root yields a task
// that has already ended.
func NewTask(root Routine) *Task {
	t := &Task{}
	if root != nil {
		t.stack = append(t.stack, root)
	}
	return t
}

// Resume advances the routine on top of the stack by one step. A spawned
// sub-routine is pushed; a finished routine is popped. Resume on an ended
// task does nothing.
func (t *Task) Resume() {
	if t.Ended() {
		return
	}
	t.resumes++

	top := t.stack[len(t.stack)-1]
	y, ok := top.Next()
	if !ok {
		t.stack[len(t.stack)-1] = nil
		t.stack = t.stack[:len(t.stack)-1]
		return
	}
	if y.sub != nil {
		t.stack = append(t.stack, y.sub)
	}
}

// Ended reports whether the stack is empty.
func (t *Task) Ended() bool {
	return len(t.stack) == 0
}

// Depth returns the number of routines on the stack.
func (t *Task) Depth() int {
	return len(t.stack)
}

// Resumes returns how many times Resume advanced the task.
func (t *Task) Resumes() int {
	return t.resumes
}

// Stop abandons the task, releasing routines that implement [Stopper],
// innermost first. The task is ended afterwards.
func (t *Task) Stop() {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if s, ok := t.stack[i].(Stopper); ok {
			s.Stop()
		}
		t.stack[i] = nil
	}
	t.stack = t.stack[:0]
}

var _ Resumable = (*Task)(nil)
