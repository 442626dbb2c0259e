package engine

import (
	"math/bits"

	bd "chess-engine/board"
)

// Game phase weights for interpolation: sum of weights over all pieces on
// the board, clamped to TotalPhase, used to blend midgame/endgame scores.
const (
	PawnPhase   = 0
	KnightPhase = 1
	BishopPhase = 1
	RookPhase   = 2
	QueenPhase  = 4
	TotalPhase  = PawnPhase*16 + KnightPhase*4 + BishopPhase*4 + RookPhase*4 + QueenPhase*2
)

// PeSTO piece values, paired (mg, eg).
var pieceValueMG = [7]int{
	bd.PieceTypePawn: 82, bd.PieceTypeKnight: 337, bd.PieceTypeBishop: 365,
	bd.PieceTypeRook: 477, bd.PieceTypeQueen: 1025,
}
var pieceValueEG = [7]int{
	bd.PieceTypePawn: 94, bd.PieceTypeKnight: 281, bd.PieceTypeBishop: 297,
	bd.PieceTypeRook: 512, bd.PieceTypeQueen: 936,
}

// PSQT_MG and PSQT_EG are the published PeSTO piece-square tables, indexed
// [pieceType][square] with square 0=a1 .. 63=h8 (White's perspective).
// Black looks up square^56, the vertical mirror.
var PSQT_MG = [7][64]int{
	bd.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		-35, -1, -20, -23, -15, 24, 38, -22,
		-26, -4, -4, -10, 3, 3, 33, -12,
		-27, -2, -5, 12, 17, 6, 10, -25,
		-14, 13, 6, 21, 23, 12, 17, -23,
		-6, 7, 26, 31, 65, 56, 25, -20,
		98, 134, 61, 95, 68, 126, 34, -11,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	bd.PieceTypeKnight: {
		-105, -21, -58, -33, -17, -28, -19, -23,
		-29, -53, -12, -3, -1, 18, -14, -19,
		-23, -9, 12, 10, 19, 17, 25, -16,
		-13, 4, 16, 13, 28, 19, 21, -8,
		-9, 17, 29, 12, 59, 26, 48, 20,
		-47, 60, 37, 65, 84, 92, 134, 49,
		-73, -41, -27, -37, -15, 42, -7, -35,
		-167, -89, -34, -49, 61, -97, -15, -107,
	},
	bd.PieceTypeBishop: {
		-33, -3, -14, -21, -13, -12, -39, -21,
		4, 15, 16, 0, 7, 21, 33, 1,
		0, 15, 15, 15, 14, 27, 18, 10,
		-6, 13, 13, 26, 34, 12, 10, 4,
		-4, 5, 19, 50, 37, 37, 7, -2,
		-16, 37, 43, 40, 35, 50, 37, -2,
		-26, 16, -18, -13, 30, 59, 18, -47,
		-29, 4, -82, -37, -25, -42, 7, -8,
	},
	bd.PieceTypeRook: {
		-19, -13, 1, 17, 16, 7, -37, -26,
		-44, -16, -20, -9, -1, 11, -6, -71,
		-45, -25, -16, -17, 3, 0, -5, -33,
		-36, -26, -12, -1, 9, -7, 6, -23,
		-24, -11, 7, 26, 24, 35, -8, -20,
		-5, 19, 26, 36, 17, 45, 61, 16,
		27, 32, 58, 62, 80, 67, 26, 44,
		32, 42, 32, 51, 63, 9, 31, 43,
	},
	bd.PieceTypeQueen: {
		-1, -18, -9, 10, -15, -25, -31, -50,
		-35, -8, 11, 2, 8, 15, -3, 1,
		-14, 2, -11, -2, -5, 2, 14, 5,
		-9, -26, -9, -10, -2, -4, 3, -3,
		-27, -27, -16, -16, -1, 17, -2, 1,
		-13, -17, 7, 8, 29, 56, 47, 57,
		-24, -39, -5, 1, -16, 57, 28, 54,
		-28, 0, 29, 12, 59, 44, 43, 45,
	},
	bd.PieceTypeKing: {
		-15, 36, 12, -54, 8, -28, 24, 14,
		1, 7, -8, -64, -43, -16, 9, 8,
		-14, -14, -22, -46, -44, -30, -15, -27,
		-49, -1, -27, -39, -46, -44, -33, -51,
		-17, -20, -12, -27, -30, -25, -14, -36,
		-9, 24, 2, -16, -20, 6, 22, -22,
		29, -1, -20, -7, -8, -4, -38, -29,
		-65, 23, 16, -15, -56, -34, 2, 13,
	},
}

var PSQT_EG = [7][64]int{
	bd.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		13, 8, 8, 10, 13, 0, 2, -7,
		4, 7, -6, 1, 0, -5, -1, -8,
		13, 9, -3, -7, -7, -8, 3, -1,
		32, 24, 13, 5, -2, 4, 17, 17,
		94, 100, 85, 67, 56, 53, 82, 84,
		178, 173, 158, 134, 147, 132, 165, 187,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	bd.PieceTypeKnight: {
		-29, -51, -23, -15, -22, -18, -50, -64,
		-42, -20, -10, -5, -2, -20, -23, -44,
		-23, -3, -1, 15, 10, -3, -20, -22,
		-18, -6, 16, 25, 16, 17, 4, -18,
		-17, 3, 22, 22, 22, 11, 8, -18,
		-24, -20, 10, 9, -1, -9, -19, -41,
		-25, -8, -25, -2, -9, -25, -24, -52,
		-58, -38, -13, -28, -31, -27, -63, -99,
	},
	bd.PieceTypeBishop: {
		-23, -9, -23, -5, -9, -16, -5, -17,
		-14, -18, -7, -1, 4, -9, -15, -27,
		-12, -3, 8, 10, 13, 3, -7, -15,
		-6, 3, 13, 19, 7, 10, -3, -9,
		-3, 9, 12, 9, 14, 10, 3, 2,
		2, -8, 0, -1, -2, 6, 0, 4,
		-8, -4, 7, -12, -3, -13, -4, -14,
		-14, -21, -11, -8, -7, -9, -17, -24,
	},
	bd.PieceTypeRook: {
		-9, 2, 3, -1, -5, -13, 4, -20,
		-6, -6, 0, 2, -9, -9, -11, -3,
		-4, 0, -5, -1, -7, -12, -8, -16,
		3, 5, 8, 4, -5, -6, -8, -11,
		4, 3, 13, 1, 2, 1, -1, 2,
		7, 7, 7, 5, 4, -3, -5, -3,
		11, 13, 13, 11, -3, 3, 8, 3,
		13, 10, 18, 15, 12, 12, 8, 5,
	},
	bd.PieceTypeQueen: {
		-33, -28, -22, -43, -5, -32, -20, -41,
		-22, -23, -30, -16, -16, -23, -36, -32,
		-16, -27, 15, 6, 9, 17, 10, 5,
		-18, 28, 19, 47, 31, 34, 39, 23,
		3, 22, 24, 45, 57, 40, 57, 36,
		-20, 6, 9, 49, 47, 35, 19, 9,
		-17, 20, 32, 41, 58, 25, 30, 0,
		-9, 22, 22, 27, 27, 19, 10, 20,
	},
	bd.PieceTypeKing: {
		-53, -34, -21, -11, -28, -14, -24, -43,
		-27, -11, 4, 13, 14, 4, -5, -17,
		-19, -3, 11, 21, 23, 16, 7, -9,
		-18, -4, 21, 24, 27, 23, 9, -11,
		-8, 22, 24, 27, 26, 33, 26, 3,
		10, 17, 23, 15, 20, 45, 44, 13,
		-12, 17, 14, 17, 17, 38, 23, 11,
		-74, -35, -18, -18, -11, 15, 4, -17,
	},
}

const (
	doubledPawnMG, doubledPawnEG   = -10, -20
	isolatedPawnMG, isolatedPawnEG = -15, -10
	bishopPairMG, bishopPairEG     = 30, 40
	rookOpenFileMG, rookOpenFileEG = 20, 10
	rookSemiFileMG, rookSemiFileEG = 10, 5
)

var passedPawnMG = [8]int{0, 5, 10, 20, 35, 60, 100, 0}
var passedPawnEG = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

var fileMask [8]uint64
var adjacentFileMask [8]uint64

func init() {
	for f := 0; f < 8; f++ {
		var m uint64
		for r := 0; r < 8; r++ {
			m |= uint64(1) << uint(r*8+f)
		}
		fileMask[f] = m
	}
	for f := 0; f < 8; f++ {
		var m uint64
		if f > 0 {
			m |= fileMask[f-1]
		}
		if f < 7 {
			m |= fileMask[f+1]
		}
		adjacentFileMask[f] = m
	}
}

// GetPiecePhase sums the phase weights of every piece on the board, clamped
// to TotalPhase.
func GetPiecePhase(b *bd.Board) int {
	phase := 0
	for _, c := range [2]bd.Color{bd.White, bd.Black} {
		bb := b.Bitboards(c)
		phase += bits.OnesCount64(bb.Knights) * KnightPhase
		phase += bits.OnesCount64(bb.Bishops) * BishopPhase
		phase += bits.OnesCount64(bb.Rooks) * RookPhase
		phase += bits.OnesCount64(bb.Queens) * QueenPhase
	}
	if phase > TotalPhase {
		phase = TotalPhase
	}
	return phase
}

// Evaluation returns a tapered material+positional score from the
// perspective of the side to move.
func Evaluation(b *bd.Board) int32 {
	var mg, eg int

	white := b.Bitboards(bd.White)
	black := b.Bitboards(bd.Black)

	addMaterialAndPSQT(&mg, &eg, white, bd.White)
	addMaterialAndPSQT(&mg, &eg, black, bd.Black)

	addPawnStructure(&mg, &eg, white.Pawns, black.Pawns, bd.White)
	addPawnStructure(&mg, &eg, black.Pawns, white.Pawns, bd.Black)

	if bits.OnesCount64(white.Bishops) >= 2 {
		mg += bishopPairMG
		eg += bishopPairEG
	}
	if bits.OnesCount64(black.Bishops) >= 2 {
		mg -= bishopPairMG
		eg -= bishopPairEG
	}

	addRookFileBonus(&mg, &eg, white.Rooks, white.Pawns, black.Pawns, 1)
	addRookFileBonus(&mg, &eg, black.Rooks, black.Pawns, white.Pawns, -1)

	phase := GetPiecePhase(b)
	blended := (mg*phase + eg*(TotalPhase-phase)) / TotalPhase

	if b.SideToMove() == bd.Black {
		blended = -blended
	}
	return int32(blended)
}

// EvalBreakdown holds Evaluation's component sub-totals, each already
// tapered by game phase and signed from the side to move's perspective, the
// same way the blended Total is.
type EvalBreakdown struct {
	MaterialPSQT  int32
	PawnStructure int32
	BishopPair    int32
	RookFile      int32
	Total         int32
}

// EvaluationBreakdown recomputes Evaluation's terms without folding them
// together, for the "eval" protocol command's diagnostic printout.
func EvaluationBreakdown(b *bd.Board) EvalBreakdown {
	var matMG, matEG, pawnMG, pawnEG, bishopMG, bishopEG, rookMG, rookEG int

	white := b.Bitboards(bd.White)
	black := b.Bitboards(bd.Black)

	addMaterialAndPSQT(&matMG, &matEG, white, bd.White)
	addMaterialAndPSQT(&matMG, &matEG, black, bd.Black)

	addPawnStructure(&pawnMG, &pawnEG, white.Pawns, black.Pawns, bd.White)
	addPawnStructure(&pawnMG, &pawnEG, black.Pawns, white.Pawns, bd.Black)

	if bits.OnesCount64(white.Bishops) >= 2 {
		bishopMG += bishopPairMG
		bishopEG += bishopPairEG
	}
	if bits.OnesCount64(black.Bishops) >= 2 {
		bishopMG -= bishopPairMG
		bishopEG -= bishopPairEG
	}

	addRookFileBonus(&rookMG, &rookEG, white.Rooks, white.Pawns, black.Pawns, 1)
	addRookFileBonus(&rookMG, &rookEG, black.Rooks, black.Pawns, white.Pawns, -1)

	phase := GetPiecePhase(b)
	blend := func(mg, eg int) int32 {
		return int32((mg*phase + eg*(TotalPhase-phase)) / TotalPhase)
	}

	out := EvalBreakdown{
		MaterialPSQT:  blend(matMG, matEG),
		PawnStructure: blend(pawnMG, pawnEG),
		BishopPair:    blend(bishopMG, bishopEG),
		RookFile:      blend(rookMG, rookEG),
	}
	out.Total = out.MaterialPSQT + out.PawnStructure + out.BishopPair + out.RookFile

	if b.SideToMove() == bd.Black {
		out.MaterialPSQT = -out.MaterialPSQT
		out.PawnStructure = -out.PawnStructure
		out.BishopPair = -out.BishopPair
		out.RookFile = -out.RookFile
		out.Total = -out.Total
	}
	return out
}

func addMaterialAndPSQT(mg, eg *int, bb bd.Bitboards, color bd.Color) {
	sign := 1
	if color == bd.Black {
		sign = -1
	}
	addPiece := func(pt bd.PieceType, bits_ uint64) {
		for bbCopy := bits_; bbCopy != 0; {
			sq := bits.TrailingZeros64(bbCopy)
			bbCopy &= bbCopy - 1
			idx := sq
			if color == bd.Black {
				idx = sq ^ 56
			}
			*mg += sign * (pieceValueMG[pt] + PSQT_MG[pt][idx])
			*eg += sign * (pieceValueEG[pt] + PSQT_EG[pt][idx])
		}
	}

	addPiece(bd.PieceTypePawn, bb.Pawns)
	addPiece(bd.PieceTypeKnight, bb.Knights)
	addPiece(bd.PieceTypeBishop, bb.Bishops)
	addPiece(bd.PieceTypeRook, bb.Rooks)
	addPiece(bd.PieceTypeQueen, bb.Queens)
	addPiece(bd.PieceTypeKing, bb.Kings)
}

// addPawnStructure adds doubled/isolated/passed bonuses for ownPawns,
// signed positive for White and negative for Black.
func addPawnStructure(mg, eg *int, ownPawns, enemyPawns uint64, color bd.Color) {
	sign := 1
	if color == bd.Black {
		sign = -1
	}

	for f := 0; f < 8; f++ {
		onFile := ownPawns & fileMask[f]
		count := bits.OnesCount64(onFile)
		if count > 1 {
			*mg += sign * doubledPawnMG * (count - 1)
			*eg += sign * doubledPawnEG * (count - 1)
		}
		if count > 0 && ownPawns&adjacentFileMask[f] == 0 {
			*mg += sign * isolatedPawnMG * count
			*eg += sign * isolatedPawnEG * count
		}
	}

	for bbCopy := ownPawns; bbCopy != 0; {
		sq := bd.Square(bits.TrailingZeros64(bbCopy))
		bbCopy &= bbCopy - 1

		file := sq.File()
		rank := sq.Rank()

		var forwardMask uint64
		span := fileMask[file] | adjacentFileMask[file]
		if color == bd.White {
			for r := rank + 1; r < 8; r++ {
				forwardMask |= span & (uint64(0xFF) << uint(r*8))
			}
		} else {
			for r := rank - 1; r >= 0; r-- {
				forwardMask |= span & (uint64(0xFF) << uint(r*8))
			}
		}

		if enemyPawns&forwardMask == 0 {
			relRank := rank
			if color == bd.Black {
				relRank = 7 - rank
			}
			*mg += sign * passedPawnMG[relRank]
			*eg += sign * passedPawnEG[relRank]
		}
	}
}

func addRookFileBonus(mg, eg *int, rooks, ownPawns, enemyPawns uint64, sign int) {
	for bbCopy := rooks; bbCopy != 0; {
		sq := bd.Square(bits.TrailingZeros64(bbCopy))
		bbCopy &= bbCopy - 1
		f := sq.File()
		if fileMask[f]&(ownPawns|enemyPawns) == 0 {
			*mg += sign * rookOpenFileMG
			*eg += sign * rookOpenFileEG
		} else if fileMask[f]&ownPawns == 0 {
			*mg += sign * rookSemiFileMG
			*eg += sign * rookSemiFileEG
		}
	}
}
