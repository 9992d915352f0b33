// Package registry provides a global registry of named path-count scenarios.
// Built-in scenarios register themselves in init() functions; scenarios read
// from config files are added at startup with Add.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/paths"
)

// Expectation is the outcome a scenario asserts: either a count or a
// constraint error kind.
type Expectation struct {
	Count *uint64
	Kind  core.ConstraintKind
}

// ExpectCount builds an Expectation for a successful count.
func ExpectCount(n uint64) Expectation {
	return Expectation{Count: &n}
}

// ExpectError builds an Expectation for a constraint failure.
func ExpectError(kind core.ConstraintKind) Expectation {
	return Expectation{Kind: kind}
}

func (e Expectation) String() string {
	switch {
	case e.Count != nil:
		return fmt.Sprintf("%d", *e.Count)
	case e.Kind != "":
		return "error: " + string(e.Kind)
	default:
		return "-"
	}
}

// Scenario is a named input with its expected outcome.
type Scenario struct {
	Name        string
	Description string
	Input       paths.Input
	Expect      Expectation
	Source      string // "builtin" or the config file it came from
}

// Info is the summary shown by listings.
type Info struct {
	Name        string
	Description string
	Expect      string
	Source      string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same name is already registered.
func Register(s Scenario) {
	if err := Add(s); err != nil {
		panic(err)
	}
}

// Add adds a scenario, failing on an empty or duplicate name.
func Add(s Scenario) error {
	mu.Lock()
	defer mu.Unlock()

	if s.Name == "" {
		return fmt.Errorf("registry: scenario name is required")
	}
	if _, exists := scenarios[s.Name]; exists {
		return fmt.Errorf("registry: scenario %q already registered", s.Name)
	}
	scenarios[s.Name] = s
	return nil
}

// List returns information about all registered scenarios, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenarios))
	for _, s := range scenarios {
		result = append(result, Info{
			Name:        s.Name,
			Description: s.Description,
			Expect:      s.Expect.String(),
			Source:      s.Source,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns a scenario by name.
// Returns an error if the name is not registered.
func Get(name string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("registry: unknown scenario %q", name)
	}
	return s, nil
}

// Exists checks if a scenario with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[name]
	return ok
}
