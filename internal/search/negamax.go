package search

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// isDraw covers the draws the search detects at interior nodes: the
// fifty-move rule, a position already seen on the current line, and bare
// kings.
func isDraw(p *engine.Position) bool {
	return p.HalfMoveClock() >= engine.FiftyMovePlies ||
		p.RepetitionCount() >= 2 ||
		p.Occupancy().Count() == 2
}

// negamax returns the score of the position after searching depth plies,
// ply plies from the root, within the window (alpha, beta).
func (e *Engine) negamax(depth, ply, alpha, beta int, allowNull bool) int {
	e.nodes++
	if e.checkAbort() {
		return 0
	}
	p := e.pos
	cfg := e.cfg.Search

	if ply > 0 && isDraw(p) {
		return DrawScore
	}
	if ply >= MaxPly {
		return Evaluate(p)
	}

	alphaOrig := alpha
	ttMove := chess.NullMove
	if entry, ok := e.tt.Probe(p.Hash()); ok {
		ttMove = entry.Move
		if ply > 0 && int(entry.Depth) >= depth {
			score := scoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case Exact:
				return score
			case Lower:
				alpha = max(alpha, score)
			case Upper:
				beta = min(beta, score)
			}
			if alpha >= beta {
				return score
			}
		}
	}

	moves := p.LegalMoves()
	inCheck := p.IsInCheck()
	if moves.Len() == 0 {
		if inCheck {
			return MatedIn(ply)
		}
		return DrawScore
	}
	if depth <= 0 {
		return e.quiesce(ply, alpha, beta, &moves)
	}

	us := p.SideToMove()
	if cfg.NullMove && allowNull && !inCheck && depth > cfg.NullMoveReduction && p.HasNonPawnMaterial(us) {
		ep := p.PlayNull()
		score := -e.negamax(depth-cfg.NullMoveReduction, ply+1, -beta, -beta+1, false)
		p.UndoNull(ep)
		if e.aborted {
			return 0
		}
		if score >= beta {
			if IsMateScore(score) {
				return beta
			}
			return score
		}
	}

	futile := false
	if cfg.Futility && depth <= 2 && !inCheck && !IsMateScore(alpha) {
		futile = Evaluate(p)+cfg.FutilityMargin*depth <= alpha
	}

	orderMoves(&moves, ttMove, &e.killers, ply)

	best, bestMove := -Infinity, chess.NullMove
	info := p.UndoInfo()
	for i, m := range moves.Slice() {
		quiet := isQuiet(m)
		if futile && quiet && i > 0 {
			continue
		}

		p.Play(m)
		var score int
		if cfg.LateMoveReduction && quiet && !inCheck && i >= cfg.LMRMinMoves &&
			depth >= cfg.LMRMinDepth && !e.killers.Is(ply, m) {
			score = -e.negamax(depth-2, ply+1, -alpha-1, -alpha, true)
			if score > alpha {
				score = -e.negamax(depth-1, ply+1, -beta, -alpha, true)
			}
		} else {
			score = -e.negamax(depth-1, ply+1, -beta, -alpha, true)
		}
		p.Undo(m, info)

		if e.aborted {
			return 0
		}
		if score > best {
			best, bestMove = score, m
			alpha = max(alpha, score)
		}
		if alpha >= beta {
			if quiet {
				e.killers.Update(ply, m)
			}
			break
		}
	}

	if ply == 0 {
		e.rootBest = bestMove
	}

	bound := Exact
	switch {
	case best <= alphaOrig:
		bound = Upper
	case best >= beta:
		bound = Lower
	}
	e.tt.Store(Entry{
		Hash:  p.Hash(),
		Move:  bestMove,
		Score: int32(scoreToTT(best, ply)),
		Depth: int16(depth),
		Bound: bound,
	})
	return best
}

// quiesce searches captures and promotions only until the position is
// quiet, with the static evaluation as a floor. moves, when not nil, are
// the already generated legal moves of the position.
func (e *Engine) quiesce(ply, alpha, beta int, moves *chess.MoveList) int {
	e.nodes++
	if e.checkAbort() {
		return 0
	}
	p := e.pos

	if moves == nil {
		list := p.LegalMoves()
		moves = &list
	}
	if moves.Len() == 0 {
		if p.IsInCheck() {
			return MatedIn(ply)
		}
		return DrawScore
	}

	best := Evaluate(p)
	if best >= beta || ply >= MaxPly {
		return best
	}
	alpha = max(alpha, best)

	moves.Retain(func(m chess.Move) bool { return m.IsCapture() || m.IsPromotion() })
	orderCaptures(moves)

	info := p.UndoInfo()
	for _, m := range moves.Slice() {
		p.Play(m)
		score := -e.quiesce(ply+1, -beta, -alpha, nil)
		p.Undo(m, info)

		if e.aborted {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > best {
			best = score
			alpha = max(alpha, score)
		}
	}
	return best
}
