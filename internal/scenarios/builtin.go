// Package scenarios registers the reference path-count scenarios and checks
// computed outcomes against their expectations.
package scenarios

import (
	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/paths"
	"github.com/vovakirdan/snake-paths/internal/registry"
)

// SourceBuiltin marks scenarios compiled into the binary.
const SourceBuiltin = "builtin"

// Builtin returns the reference scenarios in a stable order.
func Builtin() []registry.Scenario {
	return []registry.Scenario{
		{
			Name:        "hook-4x3",
			Description: "7-cell hook on a 4x3 board, three moves",
			Input: paths.Input{
				Board: []int{4, 3},
				Snake: [][]int{{2, 2}, {3, 2}, {3, 1}, {3, 0}, {2, 0}, {1, 0}, {0, 0}},
				Depth: 3,
			},
			Expect: registry.ExpectCount(7),
		},
		{
			Name:        "ring-2x3",
			Description: "6-cell ring filling a 2x3 board, ten moves",
			Input: paths.Input{
				Board: []int{2, 3},
				Snake: [][]int{{0, 2}, {0, 1}, {0, 0}, {1, 0}, {1, 1}, {1, 2}},
				Depth: 10,
			},
			Expect: registry.ExpectCount(1),
		},
		{
			Name:        "loop-10x10",
			Description: "4-cell loop in the middle of a 10x10 board, four moves",
			Input: paths.Input{
				Board: []int{10, 10},
				Snake: [][]int{{5, 5}, {5, 4}, {4, 4}, {4, 5}},
				Depth: 4,
			},
			Expect: registry.ExpectCount(81),
		},
		{
			Name:        "single-cell-board",
			Description: "a 3-cell snake cannot fit on a 1x1 board",
			Input: paths.Input{
				Board: []int{1, 1},
				Snake: [][]int{{0, 0}, {0, 1}, {0, 2}},
				Depth: 1,
			},
			Expect: registry.ExpectError(core.KindSnakeShape),
		},
		{
			Name:        "depth-too-deep",
			Description: "depth 21 is past the supported range",
			Input: paths.Input{
				Board: []int{10, 10},
				Snake: [][]int{{5, 5}, {5, 4}, {4, 4}, {4, 5}},
				Depth: 21,
			},
			Expect: registry.ExpectError(core.KindDepthRange),
		},
	}
}

func init() {
	for _, s := range Builtin() {
		s.Source = SourceBuiltin
		registry.Register(s)
	}
}
