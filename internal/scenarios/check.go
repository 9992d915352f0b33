package scenarios

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/snake-paths/internal/config"
	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/paths"
	"github.com/vovakirdan/snake-paths/internal/registry"
)

// Outcome is the result of running one scenario.
type Outcome struct {
	Scenario registry.Scenario
	Result   paths.Result
	Err      error
	Pass     bool
	Reason   string // why the scenario failed; empty on pass
}

// Got describes what the computation produced.
func (o Outcome) Got() string {
	if o.Err != nil {
		kinds := core.KindsOf(o.Err)
		if len(kinds) == 0 {
			return "error: " + o.Err.Error()
		}
		parts := make([]string, len(kinds))
		for i, k := range kinds {
			parts[i] = string(k)
		}
		return fmt.Sprintf("error: %v", parts)
	}
	return fmt.Sprintf("%d", o.Result.Count)
}

// Evaluate computes the scenario and compares the outcome against its
// expectation. Context cancellation is returned as an error rather than a
// failed outcome.
func Evaluate(ctx context.Context, s registry.Scenario, opts ...paths.Option) (Outcome, error) {
	out := Outcome{Scenario: s}

	e, err := paths.FromInput(s.Input, opts...)
	if err == nil {
		out.Result, err = e.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Outcome{}, err
		}
	}
	out.Err = err

	switch {
	case s.Expect.Count != nil:
		if err != nil {
			out.Reason = fmt.Sprintf("expected %d, got %s", *s.Expect.Count, out.Got())
		} else if out.Result.Count != *s.Expect.Count {
			out.Reason = fmt.Sprintf("expected %d, got %d", *s.Expect.Count, out.Result.Count)
		}
	case s.Expect.Kind != "":
		if err == nil {
			out.Reason = fmt.Sprintf("expected %s error, got %d", s.Expect.Kind, out.Result.Count)
		} else if !slices.Contains(core.KindsOf(err), s.Expect.Kind) {
			out.Reason = fmt.Sprintf("expected %s error, got %s", s.Expect.Kind, out.Got())
		}
	default:
		if err != nil {
			out.Reason = "unexpected " + out.Got()
		}
	}
	out.Pass = out.Reason == ""
	return out, nil
}

// FromConfig converts a scenario read from YAML.
func FromConfig(sc config.ScenarioConfig, source string) registry.Scenario {
	s := registry.Scenario{
		Name:        sc.Name,
		Description: sc.Description,
		Input: paths.Input{
			Board: sc.Board,
			Snake: sc.Snake,
			Depth: sc.Depth,
		},
		Source: source,
	}
	switch {
	case sc.Expect.Count != nil:
		s.Expect = registry.ExpectCount(*sc.Expect.Count)
	case sc.Expect.Error != "":
		s.Expect = registry.ExpectError(core.ConstraintKind(sc.Expect.Error))
	}
	return s
}

// AddConfigured registers scenarios read from YAML. Every name is attempted
// and all collisions are reported together.
func AddConfigured(list []config.ScenarioConfig, source string) error {
	var errs []error
	for _, sc := range list {
		if err := registry.Add(FromConfig(sc, source)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
