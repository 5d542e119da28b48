// search.go implements the negamax driver, iterative deepening at the root
// and the quiescence search. The main recursion carries a transposition
// table, null-move pruning, check extensions, late move reductions and
// killer/history move ordering; quiescence resolves captures with SEE
// pruning so the horizon never cuts an exchange in half.
package engine

// maxPly bounds recursion depth for the killer table and PV-length
// bookkeeping; no realistic search reaches it.
const maxPly = 128

const (
	nullMoveReduction int32 = 2
	nullMoveDepthMin  int32 = 3
	lmrDepthMin       int32 = 3
	lmrMoveMin              = 4
	checkpointNodes   uint64 = 2048
)

// Contempt is the score returned for a position repeated in the current
// search's history. Zero unless the engine is tuned for deliberate
// repetition avoidance.
var Contempt int32 = 0

// Stats collects counters about one search.
type Stats struct {
	Nodes    uint64
	SelDepth int
	Depth    int
}

// Logger reports search progress, so alternate implementations (e.g. the
// UCI front end, or a zap backed logger for `debug on`) can be swapped in
// without touching Search.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger discards everything; the default when no logger is supplied.
type NulLogger struct{}

func (NulLogger) BeginSearch()                 {}
func (NulLogger) EndSearch()                   {}
func (NulLogger) PrintPV(Stats, int32, []Move) {}

// Search drives iterative-deepening negamax over a single Position. It owns
// the per-search mutable state (killers, history, node counter, deadline)
// that must not be shared across concurrent searches.
type Search struct {
	Pos   *Position
	TT    *HashTable
	Log   Logger
	Stats Stats

	rootPly int
	killers killerTable
	history historyTable

	stopped  bool
	deadline *Deadline
	checkpt  uint64
}

// NewSearch builds a Search over pos using tt for transposition lookups.
// log may be nil, in which case NulLogger is used.
func NewSearch(pos *Position, tt *HashTable, log Logger) *Search {
	if log == nil {
		log = NulLogger{}
	}
	return &Search{Pos: pos, TT: tt, Log: log}
}

func (s *Search) ply() int { return s.Pos.Ply - s.rootPly }

// checkDeadline polls the deadline every checkpointNodes nodes, the only
// suspension point inside the search.
func (s *Search) checkDeadline() {
	if s.stopped || s.Stats.Nodes < s.checkpt {
		return
	}
	s.checkpt = s.Stats.Nodes + checkpointNodes
	if s.deadline != nil && s.deadline.Expired() {
		s.stopped = true
	}
}

// endPosition reports a terminal score for pos if the game has already
// ended by repetition, the fifty-move rule or insufficient material;
// checkmate/stalemate is handled by the move loop instead, since it needs
// the legal move list.
func (s *Search) endPosition() (int32, bool) {
	pos := s.Pos
	if pos.InsufficientMaterial() {
		return 0, true
	}
	if pos.FiftyMoveRule() {
		return 0, true
	}
	if r := pos.ThreeFoldRepetitionCount(); s.ply() > 0 && r >= 2 || r >= 3 {
		return Contempt, true
	}
	return 0, false
}

// quiescence searches captures and promotions only, so the static
// evaluation is never taken in the middle of an exchange. qply counts plies
// below the quiescence entry point and is negative/zero at entry.
func (s *Search) quiescence(alpha, beta int32, qply int) int32 {
	s.Stats.Nodes++
	if d := s.ply(); d > s.Stats.SelDepth {
		s.Stats.SelDepth = d
	}
	s.checkDeadline()
	if s.stopped {
		return alpha
	}
	if qply <= -5 {
		return Evaluate(s.Pos)
	}
	if score, done := s.endPosition(); done {
		return score
	}

	standPat := Evaluate(s.Pos)
	if standPat >= beta {
		return beta
	}
	if standPat < alpha-900 {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	pos := s.Pos
	us := pos.Us()
	captures := GenerateViolentMoves(pos, nil)
	if len(captures) == 0 {
		return standPat
	}
	sortByMVVLVA(captures)

	for _, m := range captures {
		if SEESign(pos, m) {
			continue
		}
		undo := pos.MakeMove(m)
		if pos.IsChecked(us) {
			pos.UnmakeMove(m, undo)
			continue
		}
		score := -s.quiescence(-beta, -alpha, qply-1)
		pos.UnmakeMove(m, undo)

		if s.stopped {
			return alpha
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// sortByMVVLVA orders violent moves by victim-value-first capture scores,
// without the hash/killer/history terms quiescence doesn't use.
func sortByMVVLVA(moves []Move) {
	scores := make([]int32, len(moves))
	for i, m := range moves {
		switch {
		case m.IsPromotion() && m.CaptureFigure() != NoFigure:
			scores[i] = scorePromoCapture + promotionBonus[m.PromotionFigure()] + figureValue[m.CaptureFigure()]
		case m.IsPromotion():
			scores[i] = scorePromoQuiet + promotionBonus[m.PromotionFigure()]
		case m.Flag() == Enpassant:
			scores[i] = scoreEnpassant + figureValue[Pawn]
		default:
			scores[i] = scoreCapture + figureValue[m.CaptureFigure()]*16 - figureValue[m.PieceFigure()]
		}
	}
	sortMovesByScore(moves, scores)
}

func sortMovesByScore(moves []Move, scores []int32) {
	for i := 1; i < len(moves); i++ {
		m, sc := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = sc
	}
}

// hasNonPawnMaterial reports whether side still has a minor, major or
// queen. Null-move pruning is unsound in pawn endings where zugzwang is
// common, so it is gated on this.
func (s *Search) hasNonPawnMaterial(side Color) bool {
	pos := s.Pos
	for _, fig := range [...]Figure{Knight, Bishop, Rook, Queen} {
		if pos.ByPiece(side, fig) != 0 {
			return true
		}
	}
	return false
}

// negamax is the main alpha-beta recursion. depth is the remaining search
// depth; ply is the distance from the search root.
func (s *Search) negamax(alpha, beta int32, depth int32) int32 {
	ply := s.ply()
	origAlpha := alpha

	s.Stats.Nodes++
	s.checkDeadline()
	if s.stopped {
		return alpha
	}

	// Repetition and other rule draws.
	if score, done := s.endPosition(); done {
		return score
	}

	// Mate-distance pruning.
	if a := MatedScore + int32(ply); alpha < a {
		alpha = a
	}
	if b := MateScore - int32(ply) - 1; beta > b {
		beta = b
	}
	if alpha >= beta {
		return alpha
	}

	// Transposition table probe.
	pos := s.Pos
	var hashMove Move
	if entry, ok := s.TT.Probe(pos.Zobrist()); ok {
		hashMove = entry.Move
		if int32(entry.Depth) >= depth {
			switch entry.Bound {
			case BoundExact:
				return entry.Score
			case BoundLower:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case BoundUpper:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	us, them := pos.Us(), pos.Them()
	inCheck := pos.IsChecked(us)

	// Horizon: extend when in check, otherwise resolve captures.
	if depth <= 0 {
		if inCheck {
			depth = 1
		} else {
			return s.quiescence(alpha, beta, 0)
		}
	}

	// Null-move pruning.
	if depth >= nullMoveDepthMin && !inCheck && s.hasNonPawnMaterial(us) &&
		beta < KnownWinScore && beta > KnownLossScore {
		undo := pos.MakeMove(NullMove)
		score := -s.negamax(-beta, -beta+1, depth-1-nullMoveReduction)
		pos.UnmakeMove(NullMove, undo)
		if !s.stopped && score >= beta {
			return beta
		}
	}

	pseudo := GenerateMoves(pos, nil)
	OrderMoves(pseudo, hashMove, ply, &s.killers, &s.history)

	bestMove, bestScore := NullMove, int32(-InfinityScore)
	legalCount := 0

	for i, m := range pseudo {
		undo := pos.MakeMove(m)
		if pos.IsChecked(us) {
			pos.UnmakeMove(m, undo)
			continue
		}
		legalCount++

		newDepth := depth
		givesCheck := pos.IsChecked(them)
		if givesCheck {
			newDepth++
		}

		var score int32
		if legalCount == 1 {
			// First move: full window.
			score = -s.negamax(-beta, -alpha, newDepth-1)
		} else {
			reduce := int32(0)
			if depth >= lmrDepthMin && i >= lmrMoveMin && m.IsQuiet() && !givesCheck {
				reduce = 1
				if depth >= 6 && i > 10 {
					reduce = 2
				}
			}
			score = -s.negamax(-alpha-1, -alpha, newDepth-1-reduce)
			if reduce > 0 && score > alpha {
				score = -s.negamax(-alpha-1, -alpha, newDepth-1)
			}
			if score > alpha && score < beta {
				score = -s.negamax(-beta, -alpha, newDepth-1)
			}
		}
		pos.UnmakeMove(m, undo)

		if s.stopped {
			return alpha
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}

		// Beta cutoff: remember quiet cutoff moves for ordering.
		if alpha >= beta {
			if m.IsQuiet() {
				s.killers.add(ply, m)
				bonus := depth * depth
				if bonus > maxHistoryScore {
					bonus = maxHistoryScore
				}
				s.history.add(m, bonus)
			}
			break
		}
	}

	if legalCount == 0 {
		if inCheck {
			return MatedScore + int32(ply)
		}
		return 0
	}

	bound := BoundExact
	if bestScore <= origAlpha {
		bound = BoundUpper
	} else if bestScore >= beta {
		bound = BoundLower
	}
	s.TT.Store(pos.Zobrist(), bestScore, bestMove, int8(depth), bound)
	return bestScore
}

// RootMove pairs a legal root move with the score iterative deepening last
// assigned it, used to keep the current best move first in move ordering.
type RootMove struct {
	Move  Move
	Score int32
}

// IterativeDeepening searches depth 1, 2, ... up to maxDepth plies, or
// until deadline expires (deadline may be nil for an unbounded, depth-only
// search). It returns the best move found by the last fully completed
// iteration, never a partially-searched one.
func (s *Search) IterativeDeepening(maxDepth int32, deadline *Deadline) Move {
	s.deadline = deadline
	s.stopped = false
	s.checkpt = checkpointNodes
	s.rootPly = s.Pos.Ply
	s.Stats = Stats{}
	s.TT.NewSearch()

	s.Log.BeginSearch()
	defer s.Log.EndSearch()

	legal := LegalMoves(s.Pos, nil)
	if len(legal) == 0 {
		return NullMove
	}

	best := legal[0]
	var bestScore int32
	const aspirationDelta int32 = 21

	for depth := int32(1); depth <= maxDepth; depth++ {
		if deadline != nil && depth > 1 && deadline.MoreThanHalfSpent() {
			break
		}

		// Put the previous iteration's best move first for move ordering.
		for i, m := range legal {
			if m == best {
				legal[0], legal[i] = legal[i], legal[0]
				break
			}
		}

		alpha, beta := int32(-InfinityScore), int32(InfinityScore)
		if depth >= 4 {
			alpha, beta = bestScore-aspirationDelta, bestScore+aspirationDelta
		}
		delta := aspirationDelta

		var score int32
		var iterBest Move
		for {
			score, iterBest = s.searchRoot(legal, alpha, beta, depth)
			if s.stopped {
				break
			}
			if score <= alpha {
				alpha -= delta
				if alpha < -InfinityScore {
					alpha = -InfinityScore
				}
				delta += delta / 2
				continue
			}
			if score >= beta {
				beta += delta
				if beta > InfinityScore {
					beta = InfinityScore
				}
				delta += delta / 2
				continue
			}
			break
		}

		if s.stopped {
			break
		}
		s.Stats.Depth = int(depth)
		bestScore = score
		if iterBest != NullMove {
			best = iterBest
		}
		s.TT.Store(s.Pos.Zobrist(), score, best, int8(depth), BoundExact)
		s.Log.PrintPV(s.Stats, score, []Move{best})
	}

	return best
}

// searchRoot scores every root move with PV-search (first move full window,
// remaining moves null-window with the same LMR schedule as negamax),
// returning the best score and move found at this depth.
func (s *Search) searchRoot(moves []Move, alpha, beta, depth int32) (int32, Move) {
	pos := s.Pos
	us := pos.Us()
	best, bestScore := NullMove, int32(-InfinityScore)
	localAlpha := alpha

	for i, m := range moves {
		undo := pos.MakeMove(m)
		if pos.IsChecked(us) {
			pos.UnmakeMove(m, undo)
			continue
		}

		var score int32
		if i == 0 {
			score = -s.negamax(-beta, -localAlpha, depth-1)
		} else {
			reduce := int32(0)
			if depth >= lmrDepthMin && i >= lmrMoveMin && m.IsQuiet() && !pos.IsChecked(us.Opposite()) {
				reduce = 1
				if depth >= 6 && i > 10 {
					reduce = 2
				}
			}
			score = -s.negamax(-localAlpha-1, -localAlpha, depth-1-reduce)
			if reduce > 0 && score > localAlpha {
				score = -s.negamax(-localAlpha-1, -localAlpha, depth-1)
			}
			if score > localAlpha && score < beta {
				score = -s.negamax(-beta, -localAlpha, depth-1)
			}
		}
		pos.UnmakeMove(m, undo)

		if s.stopped {
			return bestScore, best
		}
		if score > bestScore {
			bestScore, best = score, m
		}
		if score > localAlpha {
			localAlpha = score
		}
		if localAlpha >= beta {
			break
		}
	}
	return bestScore, best
}
