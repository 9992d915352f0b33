package paths

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/snake"
)

type memoKey struct {
	s         snake.Key
	remaining uint8
}

// memo counts legal continuations depth-first. Legality of a move depends
// only on the current snake, so the count for (snake, remaining) is cached.
type memo struct {
	ctx       context.Context
	board     core.Board
	table     map[memoKey]uint64
	expanded  uint64
	cancelled bool
}

func newMemo(ctx context.Context, b core.Board) *memo {
	return &memo{
		ctx:   ctx,
		board: b,
		table: make(map[memoKey]uint64),
	}
}

func (m *memo) count(s snake.Snake, before snake.Matrix, remaining int) uint64 {
	if remaining == 0 {
		return 1
	}
	if m.cancelled {
		return 0
	}

	key := memoKey{s: s.Key(), remaining: uint8(remaining)}
	if v, ok := m.table[key]; ok {
		return v
	}

	m.expanded++
	if m.expanded%cancelCheckEvery == 0 && m.ctx.Err() != nil {
		m.cancelled = true
		return 0
	}

	var total uint64
	for _, d := range core.Directions {
		next, after, ok := snake.Step(m.board, s, before, d)
		if !ok {
			continue
		}
		total += m.count(next, after, remaining-1)
	}
	if !m.cancelled {
		m.table[key] = total
	}
	return total
}

// runMemo shards on the first move. Each shard owns its memo table.
func (e *Enumerator) runMemo(ctx context.Context, workers int) (Result, error) {
	before, _ := snake.Build(e.board, e.start)

	var (
		counts   [len(core.Directions)]uint64
		expanded [len(core.Directions)]uint64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range core.Directions {
		next, after, ok := snake.Step(e.board, e.start, before, d)
		if !ok {
			e.logger.Debug("first move illegal", "dir", d)
			continue
		}
		g.Go(func() error {
			m := newMemo(gctx, e.board)
			c := m.count(next, after, e.depth-1)
			if m.cancelled {
				return gctx.Err()
			}
			counts[i] = c
			expanded[i] = m.expanded
			e.logger.Debug("shard done", "first", d, "legal", c, "states", m.expanded)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for i := range counts {
		res.Count += counts[i]
		res.Stats.States += expanded[i]
	}
	return res, nil
}
