package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// scenarioTimeout bounds how long any single scenario may run before the
// simulator gives up on it and reports a failure instead of hanging.
const scenarioTimeout = 5 * time.Second

// runOne races s against a timeout using an errgroup.Group, collecting
// whichever of the two finishes first (spec §9's host simulation is a single
// process-wide kernel; scenarios run one at a time against it rather than in
// parallel, matching how exactly one kernel instance ever exists on real
// hardware too — the errgroup's job here is the watchdog race, not fanning
// scenarios out).
func runOne(s scenario) error {
	g, ctx := errgroup.WithContext(context.Background())
	result := make(chan error, 1)

	// s.run stays outside the group so g.Wait returns on timeout even if the
	// scenario never does; result is buffered, so a late send cannot block.
	go func() { result <- s.run() }()
	g.Go(func() error {
		select {
		case err := <-result:
			return err
		case <-time.After(scenarioTimeout):
			return fmt.Errorf("%s: timed out after %s", s.name, scenarioTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	return g.Wait()
}

// runAll runs every registered scenario in order, stopping at the first
// failure, and reports a pass/fail line per scenario as it goes.
func runAll(names []string) error {
	for _, name := range names {
		s, ok := findScenario(name)
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		fmt.Printf("RUN  %-10s %s\n", s.name, s.desc)
		if err := runOne(s); err != nil {
			fmt.Printf("FAIL %-10s %v\n", s.name, err)
			return err
		}
		fmt.Printf("PASS %-10s\n", s.name)
	}
	return nil
}
