package board

import (
	"errors"
	"strings"
)

// Apply plays a move and returns a closure that undoes it. It panics if the
// move is illegal; callers that need illegal-move handling should call
// MakeMove directly instead.
func (b *Board) Apply(m Move) func() {
	ok, st := b.MakeMove(m)
	if !ok {
		panic("board.Apply: illegal move applied")
	}
	return func() { b.UnmakeMove(m, st) }
}

// ApplyNullMove performs a null move and returns the corresponding undo closure.
func (b *Board) ApplyNullMove() func() {
	st := b.MakeNullMove()
	return func() { b.UnmakeNullMove(st) }
}

// OurKingInCheck reports whether the side to move has its king in check.
func (b *Board) OurKingInCheck() bool { return b.InCheck(b.sideToMove) }

// IsCapture reports whether m captures a piece on b, including en passant.
func IsCapture(m Move, b *Board) bool {
	toBB := bb(m.To())
	if toBB&b.AllOccupancy() != 0 {
		return true
	}
	if b.enPassantSquare == NoSquare {
		return false
	}
	fromBB := bb(m.From())
	originIsPawn := fromBB&(b.pawns[White]|b.pawns[Black]) != 0
	return originIsPawn && toBB&bb(b.enPassantSquare) != 0
}

// ParseMove converts a long-algebraic UCI move string ("e2e4", "e7e8q",
// "0000") into a Move. The returned move carries from/to/promotion only;
// callers that need the moved/captured piece fields populated should look
// the move up in the position's legal move list instead.
func ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if movestr == "0000" {
		return 0, nil
	}
	if len(movestr) < 4 || len(movestr) > 5 {
		return 0, errors.New("invalid move length")
	}
	from, err := algebraicToIndex(movestr[0:2])
	if err != nil {
		return 0, err
	}
	to, err := algebraicToIndex(movestr[2:4])
	if err != nil {
		return 0, err
	}
	var promo Piece
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = PieceFromType(White, PieceTypeQueen)
		case 'r':
			promo = PieceFromType(White, PieceTypeRook)
		case 'b':
			promo = PieceFromType(White, PieceTypeBishop)
		case 'n':
			promo = PieceFromType(White, PieceTypeKnight)
		default:
			return 0, errors.New("invalid promotion piece")
		}
	}
	return NewMove(Square(from), Square(to), NoPiece, NoPiece, promo, FlagNone), nil
}

func algebraicToIndex(alg string) (int, error) {
	if len(alg) != 2 {
		return 0, errors.New("invalid algebraic square length")
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, errors.New("invalid algebraic square")
	}
	return int(file-'a') + int(rank-'1')*8, nil
}

// FindLegalMove looks up the fully-populated legal Move matching from, to,
// and promotion (NoPiece if not a promotion) among the position's legal
// moves. UCI/XBoard move strings only carry from/to/promotion, so callers
// resolve them against the legal list to recover the moved/captured piece
// and flags before calling MakeMove.
func (b *Board) FindLegalMove(from, to Square, promotion PieceType) (Move, bool) {
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && m.PromotionPieceType() == promotion {
			return m, true
		}
	}
	return 0, false
}
