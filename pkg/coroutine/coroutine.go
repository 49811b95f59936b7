// Package coroutine implements a cooperative, tick-driven scheduler.
//
// A [Routine] is a computation that advances one step per call to Next.
// Each step either suspends until the next tick ([Wait]) or hands control
// to a sub-routine ([Spawn]). A [Task] drives one routine with a stack: a
// spawned sub-routine is pushed and driven to completion before its parent
// advances again, so only the top of the stack ever runs. The task ends
// when the stack is empty.
//
// Finishing also takes a resume: a routine that yields N times ends on its
// N+1th step, exactly like a generator that reports exhaustion on the call
// after its last value.
//
// An [Executor] holds independent tasks and advances every one of them by
// one step per [Executor.Resume]. Nothing here blocks or starts goroutines
// of its own; the host decides when a tick happens.
//
//	routine := coroutine.FromSeq(func(yield func(coroutine.Yield) bool) {
//	    writeFiles()
//	    if !yield(coroutine.Wait) { // let the host pick the files up
//	        return
//	    }
//	    useFiles()
//	})
//	exec.Add(coroutine.NewTask(routine))
package coroutine

import "iter"

// Yield is the value produced by one routine step.
type Yield struct {
	sub Routine
}

// Wait suspends the routine until the next resume.
var Wait = Yield{}

// Spawn runs r to completion before the yielding routine continues.
// Spawn(nil) behaves like Wait.
func Spawn(r Routine) Yield {
	return Yield{sub: r}
}

// Sub returns the spawned routine, or nil for Wait.
func (y Yield) Sub() Routine { return y.sub }

// Routine is a resumable computation.
type Routine interface {
	// Next runs the routine up to its next suspension point. It returns
	// ok=false when the routine has finished; the returned Yield is then
	// ignored.
	Next() (y Yield, ok bool)
}

// Stopper is implemented by routines that hold resources until they run
// to completion. [Task.Stop] calls it for every routine on the stack.
type Stopper interface {
	Stop()
}

// =============================================================================
// Routine constructors
// =============================================================================

// Func adapts a function to a Routine.
type Func func() (Yield, bool)

func (f Func) Next() (Yield, bool) { return f() }

// Steps returns a routine that runs one function per step and yields its
// result. The routine ends on the step after the last function.
func Steps(fns ...func() Yield) Routine {
	i := 0
	return Func(func() (Yield, bool) {
		if i >= len(fns) {
			return Wait, false
		}
		y := fns[i]()
		i++
		return y, true
	})
}

// Done returns a routine that finishes on its first step.
func Done() Routine {
	return Steps()
}

// seqRoutine drives an iterator with iter.Pull.
type seqRoutine struct {
	next func() (Yield, bool)
	stop func()
}

// FromSeq turns a generator function into a Routine. Each value passed to
// yield is one step; returning from seq finishes the routine. yield
// returns false once the routine has been stopped, and seq should return
// promptly when it does.
//
// A routine created by FromSeq holds a suspended goroutine until it runs to
// completion or is stopped.
func FromSeq(seq iter.Seq[Yield]) Routine {
	next, stop := iter.Pull(seq)
	return &seqRoutine{next: next, stop: stop}
}

func (r *seqRoutine) Next() (Yield, bool) { return r.next() }

func (r *seqRoutine) Stop() { r.stop() }
