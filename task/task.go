package task

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes tasks in parallel. It returns the first error as soon as any task fails,
// ctx.Err() when ctx is done first, or nil after every task returned nil.
// Tasks still running when Run returns are not waited for.
func Run(ctx context.Context, tasks ...func() error) error {
	var g errgroup.Group
	first := make(chan error, 1)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			err := task()
			if err != nil {
				select {
				case first <- err:
				default:
				}
			}
			return err
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-first:
		return err
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
