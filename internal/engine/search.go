package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// DefaultAttenuation is the per-ply discount applied to predicted future
// score changes: deeper, more speculative gains weigh less than immediate
// material change.
const DefaultAttenuation = 0.75

// AI picks moves with a plain exhaustive backtracking search (no pruning).
// Cost is branching-factor^Depth; the caller bounds Depth, the search
// imposes no internal cap. An AI mutates the board it searches through
// make/unmake and relies on exclusive access for the duration of a
// ChooseMove call.
type AI struct {
	Depth       int
	Attenuation float64
	rng         *rand.Rand
}

// NewAI returns an AI searching to the given depth, seeded from the system
// entropy source.
func NewAI(depth int) *AI {
	var seed int64
	if err := binary.Read(crand.Reader, binary.LittleEndian, &seed); err != nil {
		seed = time.Now().UnixNano()
	}
	return NewSeededAI(depth, seed)
}

// NewSeededAI returns an AI with a deterministic tie-break sequence, for
// reproducible games and tests.
func NewSeededAI(depth int, seed int64) *AI {
	return &AI{
		Depth:       depth,
		Attenuation: DefaultAttenuation,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// ChooseMove searches to ai.Depth and returns the best move for the side,
// chosen uniformly at random among exact ties. The board is left untouched;
// the caller commits the move with MakeMove after checking IsNull. A null
// move means depth 0 or no candidates.
func (ai *AI) ChooseMove(b *Board, side Side) Move {
	return ai.chooseMove(b, side, ai.Depth)
}

func (ai *AI) chooseMove(b *Board, side Side, depth int) Move {
	if depth == 0 {
		return Move{}
	}
	candidates := b.Candidates(side)
	if len(candidates) == 0 {
		return Move{}
	}

	for i := range candidates {
		m := &candidates[i]
		before := b.score
		b.MakeMove(m)
		reply := ai.chooseMove(b, side.Opponent(), depth-1)
		m.ScoreChange = float64(b.score-before) + ai.Attenuation*reply.ScoreChange
		b.UnmakeMove(m)
	}

	// White maximizes the signed score, Black minimizes it.
	best := candidates[0].ScoreChange
	for _, c := range candidates[1:] {
		if side == White && c.ScoreChange > best {
			best = c.ScoreChange
		}
		if side == Black && c.ScoreChange < best {
			best = c.ScoreChange
		}
	}

	tied := candidates[:0]
	for _, c := range candidates {
		if c.ScoreChange == best {
			tied = append(tied, c)
		}
	}
	return tied[ai.rng.Intn(len(tied))]
}
