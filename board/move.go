package board

import (
	"math/bits"
	"strings"
)

// Move encodes a chess move in a single 32-bit value: from (6 bits), to (6
// bits), moved piece (4 bits), captured piece (4 bits), promotion piece (4
// bits), and a 2-bit flag. Carrying the moved/captured/promotion pieces
// alongside from/to avoids a second board lookup at every move-ordering and
// SEE call site.
type Move uint32

const (
	moveFromShift    = 0
	moveToShift      = 6
	movePieceShift   = 12
	moveCaptureShift = 16
	movePromoteShift = 20
	moveFlagShift    = 24
)

const (
	FlagNone      = 0
	FlagCastle    = 1
	FlagEnPassant = 2
)

// NewMove constructs a Move value from its components.
func NewMove(from, to Square, piece, captured Piece, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x3) << moveFlagShift)
	return Move(m)
}

func (m Move) From() Square          { return Square((uint32(m) >> moveFromShift) & 0x3F) }
func (m Move) To() Square            { return Square((uint32(m) >> moveToShift) & 0x3F) }
func (m Move) MovedPiece() Piece     { return Piece((uint32(m) >> movePieceShift) & 0xF) }
func (m Move) CapturedPiece() Piece  { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }
func (m Move) Flags() uint8          { return uint8((uint32(m) >> moveFlagShift) & 0x3) }

// PromotionPieceType returns the colorless type of the promoted piece, or
// PieceTypeNone if this move is not a promotion.
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// IsCapture reports whether the move captures a piece, including en passant.
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

// String renders the move in long algebraic notation, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	from := m.From()
	to := m.To()
	promo := m.PromotionPiece()

	str := from.String() + to.String()
	if promo != NoPiece {
		str += strings.ToLower(string(charFromPiece(promo)))
	}
	return str
}

// GivesCheck reports whether m, assumed legal for the side to move, leaves
// the opponent's king in check. It builds local copies of the moving side's
// bitboards and occupancy and queries them directly, without mutating the
// board.
func (b *Board) GivesCheck(m Move) bool {
	us := int(b.sideToMove)
	them := 1 - us

	kingBB := b.kings[them]
	if kingBB == 0 {
		return false
	}
	ksq := bits.TrailingZeros64(kingBB)

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flags()
	captured := m.CapturedPiece()

	fromBB := bb(from)
	toBB := bb(to)

	pawnsUs := b.pawns[us]
	knightsUs := b.knights[us]
	bishopsUs := b.bishops[us]
	rooksUs := b.rooks[us]
	queensUs := b.queens[us]
	kingsUs := b.kings[us]

	occUs := b.occupancy[us]
	occThem := b.occupancy[them]

	if flag == FlagEnPassant {
		var capSq Square
		if b.sideToMove == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		occThem &^= bb(capSq)
	} else if captured != NoPiece {
		occThem &^= toBB
	}

	occUs &^= fromBB
	switch typeOf(moved) {
	case 1:
		pawnsUs &^= fromBB
	case 2:
		knightsUs &^= fromBB
	case 3:
		bishopsUs &^= fromBB
	case 4:
		rooksUs &^= fromBB
	case 5:
		queensUs &^= fromBB
	case 6:
		kingsUs &^= fromBB
	}

	pieceTo := moved
	if promo != NoPiece {
		pieceTo = promo
	}
	occUs |= toBB
	switch typeOf(pieceTo) {
	case 1:
		pawnsUs |= toBB
	case 2:
		knightsUs |= toBB
	case 3:
		bishopsUs |= toBB
	case 4:
		rooksUs |= toBB
	case 5:
		queensUs |= toBB
	case 6:
		kingsUs |= toBB
	}

	if flag == FlagCastle {
		rFrom, rTo := NoSquare, NoSquare
		if moved == WhiteKing {
			if to == 6 {
				rFrom, rTo = 7, 5
			} else if to == 2 {
				rFrom, rTo = 0, 3
			}
		} else if moved == BlackKing {
			if to == 62 {
				rFrom, rTo = 63, 61
			} else if to == 58 {
				rFrom, rTo = 56, 59
			}
		}
		if rFrom != NoSquare {
			rFromBB := bb(rFrom)
			rToBB := bb(rTo)
			rooksUs &^= rFromBB
			occUs &^= rFromBB
			rooksUs |= rToBB
			occUs |= rToBB
		}
	}

	occAll := occUs | occThem

	if b.sideToMove == White {
		if pawnAttacks[Black][ksq]&pawnsUs != 0 {
			return true
		}
	} else {
		if pawnAttacks[White][ksq]&pawnsUs != 0 {
			return true
		}
	}

	if knightMoves[ksq]&knightsUs != 0 {
		return true
	}
	if kingMoves[ksq]&kingsUs != 0 {
		return true
	}

	rq := rooksUs | queensUs
	if rq != 0 && RookAttacks(Square(ksq), occAll)&rq != 0 {
		return true
	}
	bq := bishopsUs | queensUs
	if bq != 0 && BishopAttacks(Square(ksq), occAll)&bq != 0 {
		return true
	}

	return false
}
