package engine

import "fmt"

// noEnpassant marks "no en-passant target"; square a1 doubles as that
// sentinel since a real en-passant target never lands on rank 0.
const noEnpassant Square = 0

// lostCastleRights[sq] is the set of castling rights revoked when a king or
// rook moves from, or a rook is captured on, sq. A capture landing on a
// rook's home square must revoke that right even though no piece moved from
// there.
var lostCastleRights [64]Castle

func init() {
	lostCastleRights[RankFile(0, 0)] = WhiteOOO
	lostCastleRights[RankFile(0, 4)] = WhiteOOO | WhiteOO
	lostCastleRights[RankFile(0, 7)] = WhiteOO
	lostCastleRights[RankFile(7, 0)] = BlackOOO
	lostCastleRights[RankFile(7, 4)] = BlackOOO | BlackOO
	lostCastleRights[RankFile(7, 7)] = BlackOO
}

// Position is the mutable board state, searched in place via
// MakeMove/UnmakeMove. Every occupied square is set in exactly one ByFigure
// and exactly one ByColor board, and zobrist always matches the full
// recomputation from those boards.
type Position struct {
	ByFigure [FigureArraySize]Bitboard // occupancy by figure, across colors
	ByColor  [ColorArraySize]Bitboard  // occupancy by color, across figures

	SideToMove Color
	castle     Castle
	epSquare   Square // noEnpassant if none

	HalfMoveClock  int // plies since last capture or pawn move
	FullMoveNumber int
	Ply            int // plies since the position was created

	zobrist uint64

	// irreversiblePly tracks the most recent ply at which the game state
	// became irreversible (capture or pawn move), bounding how far back
	// repetition detection needs to scan.
	irreversiblePly int
	// keyHistory holds the zobrist key after each ply, indexed by Ply, for
	// repetition detection.
	keyHistory []uint64
}

// NewPosition returns an empty position with White to move and no castling
// rights.
func NewPosition() *Position {
	pos := &Position{SideToMove: White, epSquare: noEnpassant, FullMoveNumber: 1}
	pos.keyHistory = append(pos.keyHistory, pos.zobrist)
	return pos
}

// Zobrist returns the position's current hash key.
func (pos *Position) Zobrist() uint64 { return pos.zobrist }

// CastlingAbility returns the current castling-rights mask.
func (pos *Position) CastlingAbility() Castle { return pos.castle }

// EnpassantSquare returns the current en-passant target, or (noEnpassant,
// false) if none is set.
func (pos *Position) EnpassantSquare() (Square, bool) {
	return pos.epSquare, pos.epSquare != noEnpassant
}

// Us returns the side to move.
func (pos *Position) Us() Color { return pos.SideToMove }

// Them returns the side not to move.
func (pos *Position) Them() Color { return pos.SideToMove.Opposite() }

// ByPiece returns the bitboard of squares occupied by (col, fig).
func (pos *Position) ByPiece(col Color, fig Figure) Bitboard {
	return pos.ByColor[col] & pos.ByFigure[fig]
}

// Occupied returns all occupied squares.
func (pos *Position) Occupied() Bitboard { return pos.ByColor[White] | pos.ByColor[Black] }

// Get returns the piece on sq, or NoPiece.
func (pos *Position) Get(sq Square) Piece {
	bb := sq.Bitboard()
	var col Color
	switch {
	case pos.ByColor[White]&bb != 0:
		col = White
	case pos.ByColor[Black]&bb != 0:
		col = Black
	default:
		return NoPiece
	}
	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByFigure[fig]&bb != 0 {
			return ColorFigure(col, fig)
		}
	}
	return NoPiece
}

// put places piece pi on sq and updates the Zobrist key. Panics if pi is
// NoPiece; callers must check occupancy first.
func (pos *Position) put(sq Square, pi Piece) {
	if pi == NoPiece {
		panic("engine: Put called with NoPiece")
	}
	bb := sq.Bitboard()
	pos.ByColor[pi.Color()] |= bb
	pos.ByFigure[pi.Figure()] |= bb
	pos.zobrist ^= ZobristPiece[pieceIndex(pi)][sq]
}

// remove clears sq, which must currently hold pi (or be a silent no-op when
// pi is NoPiece, matching the make contract's "clear destination, silent if
// empty").
func (pos *Position) remove(sq Square, pi Piece) {
	if pi == NoPiece {
		return
	}
	bb := ^sq.Bitboard()
	pos.ByColor[pi.Color()] &= bb
	pos.ByFigure[pi.Figure()] &= bb
	pos.zobrist ^= ZobristPiece[pieceIndex(pi)][sq]
}

func (pos *Position) setCastling(c Castle) {
	pos.zobrist ^= ZobristCastle[pos.castle]
	pos.castle = c
	pos.zobrist ^= ZobristCastle[pos.castle]
}

func (pos *Position) setEnpassant(sq Square) {
	if pos.epSquare != noEnpassant {
		pos.zobrist ^= ZobristEnpassant[pos.epSquare]
	}
	pos.epSquare = sq
	if pos.epSquare != noEnpassant {
		pos.zobrist ^= ZobristEnpassant[pos.epSquare]
	}
}

func (pos *Position) setSideToMove(c Color) {
	if pos.SideToMove != c {
		pos.zobrist ^= ZobristColor
	}
	pos.SideToMove = c
}

// UndoRecord carries everything needed to reverse a move without
// re-deriving state.
type UndoRecord struct {
	MovingFigure    Figure
	CapturedFigure  Figure // NoFigure if no capture
	CapturedColor   Color
	Castle          Castle
	EnpassantSquare Square
	SideToMove      Color
	Zobrist         uint64
	HalfMoveClock   int
	IrreversiblePly int
}

// IsChecked returns whether side's king is attacked.
func (pos *Position) IsChecked(side Color) bool {
	kingBB := pos.ByPiece(side, King)
	if kingBB == 0 {
		return false
	}
	return IsSquareAttackedBy(pos, kingBB.AsSquare(), side.Opposite())
}

// MakeMove executes move m (assumed pseudo-legal) and returns the
// UndoRecord needed to reverse it. The move may leave the mover's own king
// in check; legality is the caller's concern.
func (pos *Position) MakeMove(m Move) UndoRecord {
	undo := UndoRecord{
		MovingFigure:    m.PieceFigure(),
		CapturedFigure:  m.CaptureFigure(),
		CapturedColor:   m.Color().Opposite(),
		Castle:          pos.castle,
		EnpassantSquare: pos.epSquare,
		SideToMove:      pos.SideToMove,
		Zobrist:         pos.zobrist,
		HalfMoveClock:   pos.HalfMoveClock,
		IrreversiblePly: pos.irreversiblePly,
	}

	us := pos.SideToMove
	from, to := m.From(), m.To()

	if m == NullMove {
		pos.setEnpassant(noEnpassant)
		pos.setSideToMove(us.Opposite())
		pos.Ply++
		pos.HalfMoveClock++
		pos.keyHistory = append(pos.keyHistory, pos.zobrist)
		return undo
	}

	movingPiece := ColorFigure(us, m.PieceFigure())

	// Clear the captured piece, which for en-passant does not sit on the
	// destination square.
	if m.Flag() == Enpassant {
		pos.remove(m.CaptureSquare(), ColorFigure(us.Opposite(), Pawn))
	} else if m.CaptureFigure() != NoFigure {
		pos.remove(to, ColorFigure(us.Opposite(), m.CaptureFigure()))
	}

	// Move the origin piece; promotions place the promoted piece instead.
	pos.remove(from, movingPiece)
	if m.IsPromotion() {
		pos.put(to, ColorFigure(us, m.PromotionFigure()))
	} else {
		pos.put(to, movingPiece)
	}

	// Castling moves the rook too.
	if m.Flag() == Castling {
		rook, start, end := CastlingRook(to, us)
		pos.remove(start, rook)
		pos.put(end, rook)
	}

	// A double push exposes the skipped square to en-passant capture.
	if m.PieceFigure() == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		pos.setEnpassant(RankFile((from.Rank()+to.Rank())/2, from.File()))
	} else {
		pos.setEnpassant(noEnpassant)
	}

	// Revoke castling rights touched by this move.
	pos.setCastling(pos.castle &^ lostCastleRights[from] &^ lostCastleRights[to])

	pos.setSideToMove(us.Opposite())

	if m.CaptureFigure() != NoFigure || m.PieceFigure() == Pawn {
		pos.HalfMoveClock = 0
		pos.irreversiblePly = pos.Ply
	} else {
		pos.HalfMoveClock++
	}
	if us == Black {
		pos.FullMoveNumber++
	}
	pos.Ply++
	pos.keyHistory = append(pos.keyHistory, pos.zobrist)
	return undo
}

// UnmakeMove reverses the effect of MakeMove(m), restoring pos to bit
// identity with its state before the matching MakeMove call.
func (pos *Position) UnmakeMove(m Move, undo UndoRecord) {
	pos.keyHistory = pos.keyHistory[:len(pos.keyHistory)-1]
	pos.Ply--

	if m == NullMove {
		pos.epSquare = undo.EnpassantSquare
		pos.SideToMove = undo.SideToMove
		pos.zobrist = undo.Zobrist
		pos.HalfMoveClock = undo.HalfMoveClock
		pos.irreversiblePly = undo.IrreversiblePly
		return
	}

	us := undo.SideToMove
	if us == Black {
		pos.FullMoveNumber--
	}
	from, to := m.From(), m.To()
	movingPiece := ColorFigure(us, m.PieceFigure())

	if m.Flag() == Castling {
		rook, start, end := CastlingRook(to, us)
		pos.remove(end, rook)
		pos.put(start, rook)
	}

	if m.IsPromotion() {
		pos.remove(to, ColorFigure(us, m.PromotionFigure()))
	} else {
		pos.remove(to, movingPiece)
	}
	pos.put(from, movingPiece)

	if m.Flag() == Enpassant {
		pos.put(m.CaptureSquare(), ColorFigure(us.Opposite(), m.CaptureFigure()))
	} else if m.CaptureFigure() != NoFigure {
		pos.put(to, ColorFigure(us.Opposite(), m.CaptureFigure()))
	}

	pos.castle = undo.Castle
	pos.epSquare = undo.EnpassantSquare
	pos.SideToMove = undo.SideToMove
	pos.zobrist = undo.Zobrist
	pos.HalfMoveClock = undo.HalfMoveClock
	pos.irreversiblePly = undo.IrreversiblePly
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Verify cross-checks the position's internal consistency: bitboard
// overlap, king counts, castling rights against piece placement, the
// en-passant pawn, and the incrementally maintained Zobrist key against a
// full recomputation. A violation is a programmer bug; search never calls
// Verify on its hot path.
func (pos *Position) Verify() error {
	if pos.ByColor[White]&pos.ByColor[Black] != 0 {
		return fmt.Errorf("engine: white and black occupancy overlap")
	}
	var union Bitboard
	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByFigure[fig]&union != 0 {
			return fmt.Errorf("engine: figure %v overlaps another figure", fig)
		}
		union |= pos.ByFigure[fig]
	}
	if union != pos.ByColor[White]|pos.ByColor[Black] {
		return fmt.Errorf("engine: figure and color bitboards disagree")
	}
	if pos.ByPiece(White, King).Popcnt() != 1 || pos.ByPiece(Black, King).Popcnt() != 1 {
		return fmt.Errorf("engine: expected exactly one king per side")
	}
	for _, info := range symbolToCastleInfo {
		if pos.castle&info.castle == 0 {
			continue
		}
		if pos.Get(info.square[0]) != info.piece[0] || pos.Get(info.square[1]) != info.piece[1] {
			return fmt.Errorf("engine: castling right %v set without king and rook on initial squares", info.castle)
		}
	}
	if pos.epSquare != noEnpassant {
		var pawnColor Color
		var pawnSq Square
		if pos.epSquare.Rank() == 2 {
			pawnColor, pawnSq = White, RankFile(3, pos.epSquare.File())
		} else {
			pawnColor, pawnSq = Black, RankFile(4, pos.epSquare.File())
		}
		if pos.Get(pawnSq) != ColorFigure(pawnColor, Pawn) {
			return fmt.Errorf("engine: en-passant target without matching pawn")
		}
	}
	if want := computeZobrist(pos); want != pos.zobrist {
		return fmt.Errorf("engine: zobrist key mismatch: have %x want %x", pos.zobrist, want)
	}
	return nil
}

// ThreeFoldRepetitionCount returns how many times the current position's key
// has been reached since the last irreversible move (including the current
// occurrence). No earlier occurrence can exist before a capture or pawn
// move, so the scan stops there.
func (pos *Position) ThreeFoldRepetitionCount() int {
	if len(pos.keyHistory) == 0 {
		return 0
	}
	key := pos.zobrist
	count := 0
	for i := len(pos.keyHistory) - 1; i >= pos.irreversiblePly && i >= 0; i -= 2 {
		if pos.keyHistory[i] == key {
			count++
		}
	}
	return count
}

// InsufficientMaterial reports whether neither side can possibly deliver
// checkmate.
func (pos *Position) InsufficientMaterial() bool {
	if pos.ByFigure[Pawn] != 0 || pos.ByFigure[Rook] != 0 || pos.ByFigure[Queen] != 0 {
		return false
	}
	minorCount := pos.ByFigure[Knight].Popcnt() + pos.ByFigure[Bishop].Popcnt()
	return minorCount <= 1
}

// FiftyMoveRule reports whether the 50-move (100-ply) rule applies.
func (pos *Position) FiftyMoveRule() bool { return pos.HalfMoveClock >= 100 }
