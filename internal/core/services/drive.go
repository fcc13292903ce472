package services

import (
	"context"

	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

// Drive runs tasks against a controller until no follow-up work remains.
//
// Tasks run on their own goroutines; every outcome is applied on the
// calling goroutine, which is the controller's owning loop for the
// duration of the call. It is the headless counterpart of the TUI's
// command loop.
func Drive(ctx context.Context, c driving.FacetController, tasks ...driving.Task) error {
	outcomes := make(chan driving.Outcome)
	pending := 0

	launch := func(ts []driving.Task) {
		for _, t := range ts {
			if t == nil {
				continue
			}
			pending++
			go func(t driving.Task) {
				o := t(ctx)
				select {
				case outcomes <- o:
				case <-ctx.Done():
				}
			}(t)
		}
	}

	launch(tasks)
	for pending > 0 {
		select {
		case o := <-outcomes:
			pending--
			launch(c.Apply(o))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
