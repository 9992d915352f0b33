package paths

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/snake"
)

// cancelCheckEvery is how many replayed sequences pass between context checks.
const cancelCheckEvery = 4096

// shardsPerWorker over-splits the index space so uneven shards balance out.
const shardsPerWorker = 4

// runExhaustive walks the index space [0, 4^depth) in contiguous shards.
// Index i encodes a move sequence in base 4, first move most significant,
// digits mapping to core.Directions.
func (e *Enumerator) runExhaustive(ctx context.Context, workers int) (Result, error) {
	space := pow4(e.depth)
	shards := uint64(workers * shardsPerWorker)
	if shards > space {
		shards = space
	}
	if shards == 0 {
		shards = 1
	}
	size := (space + shards - 1) / shards

	counts := make([]uint64, shards)
	replayed := make([]uint64, shards)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := uint64(0); i < shards; i++ {
		lo := i * size
		hi := lo + size
		if hi > space {
			hi = space
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			w := newWalker(e.board, e.start, e.depth)
			c, r, err := w.walk(gctx, lo, hi)
			if err != nil {
				return err
			}
			counts[i] = c
			replayed[i] = r
			e.logger.Debug("shard done", "shard", i, "lo", lo, "hi", hi, "legal", c, "replayed", r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for i := range counts {
		res.Count += counts[i]
		res.Stats.Replayed += replayed[i]
	}
	return res, nil
}

type frame struct {
	s snake.Snake
	m snake.Matrix
}

// walker replays move sequences, keeping the snake state after each prefix
// so consecutive indices only replay the moves that changed.
type walker struct {
	board  core.Board
	depth  int
	frames []frame // frames[k] is the state after k moves
	digits []int
	pows   []uint64 // pows[k] = 4^(depth-1-k), the index span of digit k
}

func newWalker(b core.Board, start snake.Snake, depth int) *walker {
	m, _ := snake.Build(b, start)
	w := &walker{
		board:  b,
		depth:  depth,
		frames: make([]frame, depth+1),
		digits: make([]int, depth),
		pows:   make([]uint64, depth),
	}
	w.frames[0] = frame{s: start, m: m}
	for k := 0; k < depth; k++ {
		w.pows[k] = pow4(depth - 1 - k)
	}
	return w
}

// decode writes the digits of idx into w.digits and returns how many leading
// digits were unchanged.
func (w *walker) decode(idx uint64) int {
	common := w.depth
	for k := 0; k < w.depth; k++ {
		d := int((idx / w.pows[k]) % 4)
		if d != w.digits[k] && common == w.depth {
			common = k
		}
		w.digits[k] = d
	}
	return common
}

// walk counts the legal sequences with index in [lo, hi). A sequence that
// fails at move k makes every index sharing its first k+1 digits illegal too,
// so the walk jumps past them without replaying each one.
func (w *walker) walk(ctx context.Context, lo, hi uint64) (legal, replayed uint64, err error) {
	for k := range w.digits {
		w.digits[k] = -1
	}
	valid := 0 // frames[0..valid] match the current digits
	idx := lo
	for idx < hi {
		if replayed%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}
		}

		if common := w.decode(idx); common < valid {
			valid = common
		}

		level := valid
		ok := true
		for level < w.depth {
			cur := w.frames[level]
			next, after, legalStep := snake.Step(w.board, cur.s, cur.m, core.Directions[w.digits[level]])
			if !legalStep {
				ok = false
				break
			}
			w.frames[level+1] = frame{s: next, m: after}
			level++
		}
		replayed++
		valid = level

		pos := level
		if ok {
			legal++
			pos = w.depth - 1
		}
		span := w.pows[pos]
		idx = (idx/span + 1) * span
	}
	return legal, replayed, nil
}
