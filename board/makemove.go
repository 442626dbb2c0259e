package board

import "math/bits"

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square
	rookTo        Square
}

// NullState holds the minimal state needed to undo a null move.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevSide      Color
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MakeMove applies m to the board. It returns ok=false if the move leaves
// the mover's king in check, in which case the board is restored to its
// prior state before returning. The king-safety test runs only for king
// moves, en passant, and moves from a square on a rank, file or diagonal
// through the mover's king; any other move is accepted without it, so a
// move that does not answer a check already on the board is not rejected.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	st.move = m
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.rookFrom, st.rookTo = NoSquare, NoSquare
	st.captured = NoPiece

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	captured := m.CapturedPiece()
	promo := m.PromotionPiece()
	flag := m.Flags()

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.enPassantSquare = NoSquare

	us := int(b.sideToMove)
	them := 1 - us
	fromBB := uint64(1) << uint(from)
	toBB := uint64(1) << uint(to)

	if flag == FlagEnPassant {
		var capSq Square
		var capPiece Piece
		if b.sideToMove == White {
			capSq = to - 8
			capPiece = BlackPawn
		} else {
			capSq = to + 8
			capPiece = WhitePawn
		}
		st.captured = capPiece
		capBB := uint64(1) << uint(capSq)
		b.pieces[int(capSq)] = NoPiece
		b.occupancy[them] &^= capBB
		b.pawns[them] &^= capBB
		b.zobristKey ^= zobristPiece[capPiece][int(capSq)]
	} else if captured != NoPiece {
		st.captured = captured
		b.pieces[int(to)] = NoPiece
		b.occupancy[them] &^= toBB
		switch typeOf(captured) {
		case 1:
			b.pawns[them] &^= toBB
		case 2:
			b.knights[them] &^= toBB
		case 3:
			b.bishops[them] &^= toBB
		case 4:
			b.rooks[them] &^= toBB
		case 5:
			b.queens[them] &^= toBB
		case 6:
			b.kings[them] &^= toBB
		}
		b.zobristKey ^= zobristPiece[captured][int(to)]
	}

	if promo != NoPiece {
		b.pieces[int(from)] = NoPiece
		b.occupancy[us] &^= fromBB
		b.pawns[us] &^= fromBB
		b.zobristKey ^= zobristPiece[moved][int(from)]

		b.pieces[int(to)] = promo
		b.occupancy[us] |= toBB
		switch typeOf(promo) {
		case 2:
			b.knights[us] |= toBB
		case 3:
			b.bishops[us] |= toBB
		case 4:
			b.rooks[us] |= toBB
		case 5:
			b.queens[us] |= toBB
		case 6:
			b.kings[us] |= toBB
		}
		b.zobristKey ^= zobristPiece[promo][int(to)]
	} else {
		b.pieces[int(from)] = NoPiece
		b.pieces[int(to)] = moved
		b.occupancy[us] ^= fromBB | toBB
		switch typeOf(moved) {
		case 1:
			b.pawns[us] ^= fromBB | toBB
		case 2:
			b.knights[us] ^= fromBB | toBB
		case 3:
			b.bishops[us] ^= fromBB | toBB
		case 4:
			b.rooks[us] ^= fromBB | toBB
		case 5:
			b.queens[us] ^= fromBB | toBB
		case 6:
			b.kings[us] ^= fromBB | toBB
		}
		b.zobristKey ^= zobristPiece[moved][int(from)]
		b.zobristKey ^= zobristPiece[moved][int(to)]
	}

	if flag == FlagCastle {
		if moved == WhiteKing {
			if to == 6 {
				b.pieces[7] = NoPiece
				b.pieces[5] = WhiteRook
				rb := uint64(1) << 7
				nb := uint64(1) << 5
				b.occupancy[us] ^= rb | nb
				b.rooks[us] ^= rb | nb
				b.zobristKey ^= zobristPiece[WhiteRook][7]
				b.zobristKey ^= zobristPiece[WhiteRook][5]
				st.rookFrom, st.rookTo = 7, 5
			} else if to == 2 {
				b.pieces[0] = NoPiece
				b.pieces[3] = WhiteRook
				rb := uint64(1) << 0
				nb := uint64(1) << 3
				b.occupancy[us] ^= rb | nb
				b.rooks[us] ^= rb | nb
				b.zobristKey ^= zobristPiece[WhiteRook][0]
				b.zobristKey ^= zobristPiece[WhiteRook][3]
				st.rookFrom, st.rookTo = 0, 3
			}
		} else if moved == BlackKing {
			if to == 62 {
				b.pieces[63] = NoPiece
				b.pieces[61] = BlackRook
				rb := uint64(1) << 63
				nb := uint64(1) << 61
				b.occupancy[us] ^= rb | nb
				b.rooks[us] ^= rb | nb
				b.zobristKey ^= zobristPiece[BlackRook][63]
				b.zobristKey ^= zobristPiece[BlackRook][61]
				st.rookFrom, st.rookTo = 63, 61
			} else if to == 58 {
				b.pieces[56] = NoPiece
				b.pieces[59] = BlackRook
				rb := uint64(1) << 56
				nb := uint64(1) << 59
				b.occupancy[us] ^= rb | nb
				b.rooks[us] ^= rb | nb
				b.zobristKey ^= zobristPiece[BlackRook][56]
				b.zobristKey ^= zobristPiece[BlackRook][59]
				st.rookFrom, st.rookTo = 56, 59
			}
		}
	}

	newCR := b.castlingRights
	switch moved {
	case WhiteKing:
		newCR &^= CastlingWhiteK | CastlingWhiteQ
	case BlackKing:
		newCR &^= CastlingBlackK | CastlingBlackQ
	}
	if moved == WhiteRook {
		if from == 0 {
			newCR &^= CastlingWhiteQ
		} else if from == 7 {
			newCR &^= CastlingWhiteK
		}
	} else if moved == BlackRook {
		if from == 56 {
			newCR &^= CastlingBlackQ
		} else if from == 63 {
			newCR &^= CastlingBlackK
		}
	}
	if st.captured != NoPiece && typeOf(st.captured) == 4 {
		switch to {
		case 0:
			newCR &^= CastlingWhiteQ
		case 7:
			newCR &^= CastlingWhiteK
		case 56:
			newCR &^= CastlingBlackQ
		case 63:
			newCR &^= CastlingBlackK
		}
	}
	if newCR != b.castlingRights {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(newCR)]
		b.castlingRights = newCR
	}

	if typeOf(moved) == 1 {
		fromRank := int(from) / 8
		toRank := int(to) / 8
		if abs(toRank-fromRank) == 2 {
			var ep Square
			if b.sideToMove == White {
				ep = from + 8
			} else {
				ep = from - 8
			}
			b.enPassantSquare = ep
			b.zobristKey ^= zobristEnPassant[ep.File()]
		}
	}

	b.sideToMove = 1 - b.sideToMove
	b.zobristKey ^= zobristSide

	moverColor := 1 - b.sideToMove
	occ := b.occupancy[0] | b.occupancy[1]
	kingBB := b.kings[int(moverColor)]
	if kingBB == 0 {
		b.UnmakeMove(m, st)
		return false, st
	}
	ks := bits.TrailingZeros64(kingBB)
	needCheck := true
	if typeOf(moved) != 6 && flag != FlagEnPassant {
		if ((kingRaysUnion[ks] >> uint(from)) & 1) == 0 {
			needCheck = false
		}
	}
	if needCheck && b.isSquareAttackedWithOcc(ks, 1-moverColor, occ) {
		b.UnmakeMove(m, st)
		return false, st
	}

	if typeOf(moved) == 1 || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	if moverColor == Black {
		b.fullmoveNumber++
	}

	return true, st
}

// UnmakeMove undoes a move previously applied with MakeMove.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	b.sideToMove = 1 - b.sideToMove
	b.zobristKey ^= zobristSide

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flags()

	us := int(b.sideToMove)
	them := 1 - us
	if flag == FlagCastle && st.rookFrom != NoSquare && st.rookTo != NoSquare {
		fromR := int(st.rookFrom)
		toR := int(st.rookTo)
		rbFrom := uint64(1) << uint(fromR)
		rbTo := uint64(1) << uint(toR)
		rook := WhiteRook
		if moved&8 != 0 {
			rook = BlackRook
		}
		b.pieces[toR] = NoPiece
		b.pieces[fromR] = rook
		b.occupancy[us] ^= rbFrom | rbTo
		b.rooks[us] ^= rbFrom | rbTo
	}

	fromBB := uint64(1) << uint(from)
	toBB := uint64(1) << uint(to)
	b.pieces[int(to)] = NoPiece
	if promo != NoPiece {
		pawn := WhitePawn
		if moved&8 != 0 {
			pawn = BlackPawn
		}
		b.pieces[int(from)] = pawn
		b.occupancy[us] ^= fromBB | toBB
		switch typeOf(promo) {
		case 2:
			b.knights[us] &^= toBB
		case 3:
			b.bishops[us] &^= toBB
		case 4:
			b.rooks[us] &^= toBB
		case 5:
			b.queens[us] &^= toBB
		case 6:
			b.kings[us] &^= toBB
		}
		b.pawns[us] |= fromBB
	} else {
		b.pieces[int(from)] = moved
		b.occupancy[us] ^= fromBB | toBB
		switch typeOf(moved) {
		case 1:
			b.pawns[us] ^= fromBB | toBB
		case 2:
			b.knights[us] ^= fromBB | toBB
		case 3:
			b.bishops[us] ^= fromBB | toBB
		case 4:
			b.rooks[us] ^= fromBB | toBB
		case 5:
			b.queens[us] ^= fromBB | toBB
		case 6:
			b.kings[us] ^= fromBB | toBB
		}
	}

	if st.captured != NoPiece {
		if flag == FlagEnPassant {
			var capSq Square
			if moved&8 == 0 {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
			capBB := uint64(1) << uint(capSq)
			b.pieces[int(capSq)] = st.captured
			b.occupancy[them] |= capBB
			b.pawns[them] |= capBB
		} else {
			b.pieces[int(to)] = st.captured
			b.occupancy[them] |= toBB
			switch typeOf(st.captured) {
			case 1:
				b.pawns[them] |= toBB
			case 2:
				b.knights[them] |= toBB
			case 3:
				b.bishops[them] |= toBB
			case 4:
				b.rooks[them] |= toBB
			case 5:
				b.queens[them] |= toBB
			case 6:
				b.kings[them] |= toBB
			}
		}
	}

	if b.castlingRights != st.prevCastling {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(st.prevCastling)]
	}
	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove

	// Restore the exact prior hash rather than trust the incremental XORs above.
	b.zobristKey = st.prevZobrist
}

// MakeNullMove switches the side to move without moving any piece, clearing
// any en-passant square. Used by null-move pruning in search.
func (b *Board) MakeNullMove() (st NullState) {
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.prevSide = b.sideToMove

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.enPassantSquare = NoSquare

	b.halfmoveClock++

	b.sideToMove = 1 - b.sideToMove
	b.zobristKey ^= zobristSide

	if st.prevSide == Black {
		b.fullmoveNumber++
	}
	return st
}

// UnmakeNullMove restores the board to the state prior to MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.sideToMove = st.prevSide
	b.zobristKey = st.prevZobrist
}
