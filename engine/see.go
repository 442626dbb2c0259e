package engine

import (
	"math/bits"

	bd "chess-engine/board"
)

// SeePieceValue gives the material value used by static exchange
// evaluation, indexed by bd.PieceType. King is included so a king capturing
// into an exchange sequence still minimaxes sensibly, even though a legal
// king move never actually enters one.
var SeePieceValue = [7]int{
	bd.PieceTypeNone:   0,
	bd.PieceTypePawn:   100,
	bd.PieceTypeKnight: 300,
	bd.PieceTypeBishop: 300,
	bd.PieceTypeRook:   500,
	bd.PieceTypeQueen:  900,
	bd.PieceTypeKing:   10000,
}

// SeeGE reports whether playing move on b, followed by a sequence of
// least-valuable-attacker recaptures on the target square, nets the mover
// at least threshold material. Move ordering uses SeeGE(mv, 0) to split
// captures into good/bad; quiescence, when not in check, uses SeeGE(mv, 0)
// to skip captures that lose material.
func SeeGE(b *bd.Board, move bd.Move, threshold int) bool {
	from := move.From()
	to := move.To()

	occ := b.AllOccupancy()
	occ &^= uint64(1) << uint(from)

	var gain [32]int
	depth := 0

	if move.Flags() == bd.FlagEnPassant {
		gain[depth] = SeePieceValue[bd.PieceTypePawn]
		var capSq bd.Square
		if b.SideToMove() == bd.White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		occ &^= uint64(1) << uint(capSq)
	} else {
		gain[depth] = SeePieceValue[move.CapturedPiece().Type()]
	}

	attackerType := move.MovedPiece().Type()
	side := b.SideToMove().Other()
	attadef := b.AttackersTo(to, occ)

	for {
		attackers := attadef & b.ColorOccupancy(side)
		if attackers == 0 {
			break
		}
		sq, pt := leastValuableAttacker(b, attackers)
		if pt == bd.PieceTypeNone {
			break
		}

		depth++
		gain[depth] = SeePieceValue[attackerType] - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		occ &^= uint64(1) << uint(sq)
		attadef = b.AttackersTo(to, occ)
		attackerType = pt
		side = side.Other()
	}

	for d := depth; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}

	return gain[0] >= threshold
}

// leastValuableAttacker picks the cheapest piece among attackers, the
// standard SEE tie-break that maximizes the defender's eventual gain.
func leastValuableAttacker(b *bd.Board, attackers uint64) (bd.Square, bd.PieceType) {
	bestSq := bd.NoSquare
	bestType := bd.PieceTypeNone
	bestValue := 1 << 30
	for bb := attackers; bb != 0; {
		sq := bd.Square(bits.TrailingZeros64(bb))
		bb &= bb - 1
		pt := b.PieceAt(sq).Type()
		if v := SeePieceValue[pt]; v < bestValue {
			bestValue = v
			bestType = pt
			bestSq = sq
		}
	}
	return bestSq, bestType
}
