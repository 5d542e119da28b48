// movegen.go generates pseudo-legal moves: they may leave the mover's own
// king in check, which legal.go's LegalMoves filters out via
// make-check-unmake.
package engine

var promotionFigures = [4]Figure{Queen, Rook, Bishop, Knight}

// GenerateMoves appends all pseudo-legal moves for the side to move to
// moves, and returns the extended slice.
func GenerateMoves(pos *Position, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Opposite()
	occ := pos.Occupied()
	ours := pos.ByColor[us]
	notOurs := ^ours

	moves = genPawnMoves(pos, us, them, occ, moves)
	moves = genJumpMoves(pos.ByPiece(us, Knight), bbKnightAttack[:], notOurs, Knight, us, pos, moves)
	moves = genJumpMoves(pos.ByPiece(us, King), bbKingAttack[:], notOurs, King, us, pos, moves)
	moves = genSliderMoves(pos.ByPiece(us, Bishop), Bishop, occ, notOurs, us, pos, moves)
	moves = genSliderMoves(pos.ByPiece(us, Rook), Rook, occ, notOurs, us, pos, moves)
	moves = genSliderMoves(pos.ByPiece(us, Queen), Queen, occ, notOurs, us, pos, moves)
	moves = genCastleMoves(pos, us, occ, moves)
	return moves
}

// GenerateViolentMoves appends only captures, en-passant and promotions,
// the moves quiescence search considers.
func GenerateViolentMoves(pos *Position, moves []Move) []Move {
	all := GenerateMoves(pos, nil)
	for _, m := range all {
		if m.IsViolent() {
			moves = append(moves, m)
		}
	}
	return moves
}

func addMove(moves []Move, from, to Square, piece, capture Figure, flag MoveFlag, color Color) []Move {
	return append(moves, encodeMove(from, to, NoFigure, false, flag, piece, capture, color))
}

func genJumpMoves(from Bitboard, attack []Bitboard, notOurs Bitboard, fig Figure, us Color, pos *Position, moves []Move) []Move {
	for from != 0 {
		sq := from.Pop()
		targets := attack[sq] & notOurs
		for targets != 0 {
			to := targets.Pop()
			capture := pos.Get(to).Figure()
			flag := Normal
			if capture != NoFigure {
				flag = Capture
			}
			moves = addMove(moves, sq, to, fig, capture, flag, us)
		}
	}
	return moves
}

func genSliderMoves(from Bitboard, fig Figure, occ, notOurs Bitboard, us Color, pos *Position, moves []Move) []Move {
	for from != 0 {
		sq := from.Pop()
		var targets Bitboard
		switch fig {
		case Bishop:
			targets = BishopAttacks(sq, occ)
		case Rook:
			targets = RookAttacks(sq, occ)
		case Queen:
			targets = QueenAttacks(sq, occ)
		}
		targets &= notOurs
		for targets != 0 {
			to := targets.Pop()
			capture := pos.Get(to).Figure()
			flag := Normal
			if capture != NoFigure {
				flag = Capture
			}
			moves = addMove(moves, sq, to, fig, capture, flag, us)
		}
	}
	return moves
}

func genPawnMoves(pos *Position, us, them Color, occ Bitboard, moves []Move) []Move {
	pawns := pos.ByPiece(us, Pawn)
	var forward int
	var startRank, promoRank int
	if us == White {
		forward, startRank, promoRank = 8, 1, 7
	} else {
		forward, startRank, promoRank = -8, 6, 0
	}

	for bb := pawns; bb != 0; {
		from := bb.Pop()
		to := Square(int(from) + forward)
		if to.Rank() < 0 || to.Rank() > 7 {
			continue
		}

		// single push
		if occ&to.Bitboard() == 0 {
			moves = genPawnAdvance(moves, from, to, promoRank, us)
			// double push
			if from.Rank() == startRank {
				to2 := Square(int(to) + forward)
				if occ&to2.Bitboard() == 0 {
					moves = addMove(moves, from, to2, Pawn, NoFigure, Normal, us)
				}
			}
		}

		moves = genPawnCaptures(pos, from, forward, us, them, promoRank, moves)
	}
	return moves
}

func genPawnAdvance(moves []Move, from, to Square, promoRank int, us Color) []Move {
	if to.Rank() == promoRank {
		for _, pf := range promotionFigures {
			moves = append(moves, encodeMove(from, to, pf, true, Normal, Pawn, NoFigure, us))
		}
		return moves
	}
	return addMove(moves, from, to, Pawn, NoFigure, Normal, us)
}

func genPawnCaptures(pos *Position, from Square, forward int, us, them Color, promoRank int, moves []Move) []Move {
	attack := bbPawnAttack[us][from]
	targets := attack & pos.ByColor[them]
	for targets != 0 {
		to := targets.Pop()
		capture := pos.Get(to).Figure()
		if to.Rank() == promoRank {
			for _, pf := range promotionFigures {
				moves = append(moves, encodeMove(from, to, pf, true, Capture, Pawn, capture, us))
			}
		} else {
			moves = addMove(moves, from, to, Pawn, capture, Capture, us)
		}
	}

	if ep, ok := pos.EnpassantSquare(); ok {
		if attack&ep.Bitboard() != 0 {
			moves = addMove(moves, from, ep, Pawn, Pawn, Enpassant, us)
		}
	}
	return moves
}

// castling precondition masks: squares that must be empty between king and
// rook.
var (
	castleEmptyWhiteOO  = RankFile(0, 5).Bitboard() | RankFile(0, 6).Bitboard()
	castleEmptyWhiteOOO = RankFile(0, 1).Bitboard() | RankFile(0, 2).Bitboard() | RankFile(0, 3).Bitboard()
	castleEmptyBlackOO  = RankFile(7, 5).Bitboard() | RankFile(7, 6).Bitboard()
	castleEmptyBlackOOO = RankFile(7, 1).Bitboard() | RankFile(7, 2).Bitboard() | RankFile(7, 3).Bitboard()
)

func genCastleMoves(pos *Position, us Color, occ Bitboard, moves []Move) []Move {
	ability := pos.CastlingAbility()
	them := us.Opposite()

	tryCastle := func(right Castle, empty Bitboard, kingFrom, kingTo, passSq Square) []Move {
		if ability&right == 0 {
			return moves
		}
		if occ&empty != 0 {
			return moves
		}
		if IsSquareAttackedBy(pos, kingFrom, them) {
			return moves
		}
		if IsSquareAttackedBy(pos, passSq, them) {
			return moves
		}
		if IsSquareAttackedBy(pos, kingTo, them) {
			return moves
		}
		return addMove(moves, kingFrom, kingTo, King, NoFigure, Castling, us)
	}

	if us == White {
		moves = tryCastle(WhiteOO, castleEmptyWhiteOO, RankFile(0, 4), RankFile(0, 6), RankFile(0, 5))
		moves = tryCastle(WhiteOOO, castleEmptyWhiteOOO, RankFile(0, 4), RankFile(0, 2), RankFile(0, 3))
	} else {
		moves = tryCastle(BlackOO, castleEmptyBlackOO, RankFile(7, 4), RankFile(7, 6), RankFile(7, 5))
		moves = tryCastle(BlackOOO, castleEmptyBlackOOO, RankFile(7, 4), RankFile(7, 2), RankFile(7, 3))
	}
	return moves
}
