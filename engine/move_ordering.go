// move_ordering.go scores and sorts moves for search: hash move first, then
// captures by MVV-LVA, then killers, then quiets by history.
package engine

import "sort"

const (
	scoreHashMove     int32 = 2000000000
	scorePromoCapture int32 = 2000000
	scorePromoQuiet   int32 = 800000
	scoreCapture      int32 = 1000000
	scoreEnpassant    int32 = 1000000
	scoreCastle       int32 = 500000
	scoreKiller1      int32 = 900000
	scoreKiller2      int32 = 800000
	maxHistoryScore   int32 = 700000
)

// figureValue is used for MVV-LVA ordering and promotion bonuses; pawn
// through queen match the middlegame material values in material.go, while
// the king is valued higher here (20000 against 9999).
var figureValue = [FigureArraySize]int32{
	NoFigure: 0, Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900, King: 20000,
}

// promotionBonus rewards higher promotions over lower ones.
var promotionBonus = [FigureArraySize]int32{Queen: 3000, Rook: 2000, Bishop: 1000, Knight: 1000}

// killerTable[ply][slot] holds up to two killer moves per ply.
type killerTable struct {
	moves [maxPly][2]Move
}

func (kt *killerTable) add(ply int, m Move) {
	if kt.moves[ply][0] == m {
		return
	}
	kt.moves[ply][1] = kt.moves[ply][0]
	kt.moves[ply][0] = m
}

func (kt *killerTable) isKiller(ply int, m Move) (first bool, second bool) {
	return kt.moves[ply][0] == m, kt.moves[ply][1] == m
}

// historyTable scores quiet moves that have historically caused cutoffs,
// indexed by [color][from][to].
type historyTable struct {
	table [ColorArraySize][64][64]int32
}

func (ht *historyTable) get(m Move) int32 {
	return ht.table[m.Color()][m.From()][m.To()]
}

func (ht *historyTable) add(m Move, bonus int32) {
	v := &ht.table[m.Color()][m.From()][m.To()]
	*v += bonus
	if *v > maxHistoryScore {
		*v = maxHistoryScore
	}
	if *v < -maxHistoryScore {
		*v = -maxHistoryScore
	}
}

// scoreMove assigns an ordering score to m. hashMove may be NullMove if
// there is no TT hint.
func scoreMove(m, hashMove Move, ply int, kt *killerTable, ht *historyTable) int32 {
	if m == hashMove {
		return scoreHashMove
	}
	switch {
	case m.IsPromotion() && m.CaptureFigure() != NoFigure:
		return scorePromoCapture + promotionBonus[m.PromotionFigure()] + figureValue[m.CaptureFigure()]
	case m.IsPromotion():
		return scorePromoQuiet + promotionBonus[m.PromotionFigure()]
	case m.Flag() == Enpassant:
		return scoreEnpassant + figureValue[Pawn]
	case m.Flag() == Capture:
		// MVV-LVA: prioritize high-value victims, then low-value attackers.
		return scoreCapture + figureValue[m.CaptureFigure()]*16 - figureValue[m.PieceFigure()]
	case m.Flag() == Castling:
		return scoreCastle
	}
	if first, second := kt.isKiller(ply, m); first {
		return scoreKiller1
	} else if second {
		return scoreKiller2
	}
	return ht.get(m)
}

// OrderMoves sorts moves in place by descending scoreMove score, which
// takes hashMove, ply-indexed killers and history into account.
func OrderMoves(moves []Move, hashMove Move, ply int, kt *killerTable, ht *historyTable) {
	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = scoreMove(m, hashMove, ply, kt, ht)
	}
	sort.Sort(&moveSorter{moves: moves, scores: scores})
}

type moveSorter struct {
	moves  []Move
	scores []int32
}

func (s *moveSorter) Len() int { return len(s.moves) }
func (s *moveSorter) Less(i, j int) bool { return s.scores[i] > s.scores[j] }
func (s *moveSorter) Swap(i, j int) {
	s.moves[i], s.moves[j] = s.moves[j], s.moves[i]
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
}
