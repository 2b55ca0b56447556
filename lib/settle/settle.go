// Package settle runs lookups against several sources at once and keeps
// every outcome, a failing source never cancels the others.
package settle

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/sync/errgroup"
)

type State int

const (
	// Failed is the zero value so that an outcome which never ran reads as
	// a failure.
	Failed State = iota
	Found
	NotFound
)

func (s State) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	}
	return "failed"
}

// Task is a lookup against one source. Run returns the value and whether it
// was found, an error means the source could not be asked.
type Task[T any] struct {
	Source string
	Run    func(ctx context.Context) (T, bool, error)
}

type Outcome[T any] struct {
	Source string
	State  State
	Value  T
	Err    error
}

// PanicError is the error of an outcome whose task panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// All runs every task, at most `limit` at a time (no limit when <= 0), and
// returns their outcomes in the order of `tasks`.
func All[T any](ctx context.Context, limit int, tasks ...Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))

	group := errgroup.Group{}
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i, task := range tasks {
		group.Go(func() error {
			outcomes[i] = run(ctx, task)
			return nil
		})
	}
	group.Wait()

	return outcomes
}

func run[T any](ctx context.Context, task Task[T]) (out Outcome[T]) {
	out.Source = task.Source
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out.Value = zero
			out.State = Failed
			out.Err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	if task.Run == nil {
		out.Err = fmt.Errorf("%s: no lookup", task.Source)
		return out
	}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	value, found, err := task.Run(ctx)
	switch {
	case err != nil:
		out.State = Failed
		out.Err = err
	case found:
		out.State = Found
		out.Value = value
	default:
		out.State = NotFound
	}
	return out
}

// Count returns how many outcomes are in each state.
func Count[T any](outcomes []Outcome[T]) map[State]int {
	counts := map[State]int{}
	for _, o := range outcomes {
		counts[o.State]++
	}
	return counts
}

// Summarize renders a one line summary, ex. "found in 2 of 4 sources, 1 errored".
func Summarize[T any](outcomes []Outcome[T]) string {
	counts := Count(outcomes)

	var sb strings.Builder
	noun := "sources"
	if len(outcomes) == 1 {
		noun = "source"
	}
	fmt.Fprintf(&sb, "found in %d of %d %s", counts[Found], len(outcomes), noun)
	if counts[Failed] > 0 {
		fmt.Fprintf(&sb, ", %d errored", counts[Failed])
	}
	return sb.String()
}
