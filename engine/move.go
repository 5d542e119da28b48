package engine

// MoveFlag classifies a move the way the generator and make/unmake need to
// distinguish it.
type MoveFlag uint8

const (
	Normal MoveFlag = iota
	Capture
	Castling
	Enpassant
)

// Move is a move encoded into a single 32-bit word for cache density:
//
//	bits  0- 5  from square
//	bits  6-11  to square
//	bits 12-14  promotion figure (only meaningful when isPromotion is set)
//	bits 15-16  flag (Normal/Capture/Castling/Enpassant)
//	bit     17  isPromotion
//	bits 18-20  moving piece's figure
//	bits 21-23  captured figure (NoFigure if none)
//	bits 24-25  moving piece's color
//	bit     31  null-move marker
//
// NullMove is the designated "no move" value: from=to=0 with the marker bit
// set, which never collides with a real move (from != to always holds for a
// legal chess move).
type Move uint32

const nullMoveBit = 1 << 31

// NullMove represents "no move" or the null move played for null-move
// pruning.
const NullMove Move = nullMoveBit

func encodeMove(from, to Square, promotion Figure, isPromotion bool, flag MoveFlag, piece, capture Figure, color Color) Move {
	m := Move(from) | Move(to)<<6
	m |= Move(promotion) << 12
	m |= Move(flag) << 15
	if isPromotion {
		m |= 1 << 17
	}
	m |= Move(piece) << 18
	m |= Move(capture) << 21
	m |= Move(color) << 24
	return m
}

func (m Move) From() Square      { return Square(m & 0x3f) }
func (m Move) To() Square        { return Square((m >> 6) & 0x3f) }
func (m Move) PromotionFigure() Figure {
	if m&(1<<17) == 0 {
		return NoFigure
	}
	return Figure((m >> 12) & 7)
}
func (m Move) Flag() MoveFlag   { return MoveFlag((m >> 15) & 3) }
func (m Move) IsPromotion() bool { return m&(1<<17) != 0 }
func (m Move) PieceFigure() Figure   { return Figure((m >> 18) & 7) }
func (m Move) CaptureFigure() Figure { return Figure((m >> 21) & 7) }
func (m Move) Color() Color          { return Color((m >> 24) & 3) }

// Piece returns the moving piece (figure+color), or the pawn that is being
// promoted for a promotion move.
func (m Move) Piece() Piece { return ColorFigure(m.Color(), m.PieceFigure()) }

// Promotion returns the promoted piece, or NoPiece if this isn't a promotion.
func (m Move) Promotion() Piece {
	if !m.IsPromotion() {
		return NoPiece
	}
	return ColorFigure(m.Color(), m.PromotionFigure())
}

// Capture returns the captured piece, or NoPiece if the move isn't a
// capture/en-passant.
func (m Move) Capture() Piece {
	fig := m.CaptureFigure()
	if fig == NoFigure {
		return NoPiece
	}
	return ColorFigure(m.Color().Opposite(), fig)
}

// CaptureSquare returns the square of the captured piece. Undefined if the
// move is not a capture.
func (m Move) CaptureSquare() Square {
	if m.Flag() == Enpassant {
		to := m.To()
		from := m.From()
		return RankFile(from.Rank(), to.File())
	}
	return m.To()
}

// IsQuiet returns true for moves that are neither captures nor promotions;
// used to gate killer/history updates and LMR eligibility.
func (m Move) IsQuiet() bool {
	return m.Flag() != Capture && m.Flag() != Enpassant && !m.IsPromotion()
}

// IsViolent returns true for moves quiescence search should consider:
// captures, en-passant and promotions.
func (m Move) IsViolent() bool {
	return m.Flag() == Capture || m.Flag() == Enpassant || m.IsPromotion()
}

// UCI renders m in UCI long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += promotionSuffix[m.PromotionFigure()]
	}
	return s
}

var promotionSuffix = [FigureArraySize]string{Knight: "n", Bishop: "b", Rook: "r", Queen: "q"}

func (m Move) String() string { return m.UCI() }

// CastlingRook returns the rook piece and its start/end squares for a
// castling move whose king lands on kingEnd.
func CastlingRook(kingEnd Square, color Color) (Piece, Square, Square) {
	rank := kingEnd.Rank()
	if kingEnd.File() == 6 { // king side, king ends on g-file
		return ColorFigure(color, Rook), RankFile(rank, 7), RankFile(rank, 5)
	}
	return ColorFigure(color, Rook), RankFile(rank, 0), RankFile(rank, 3)
}
