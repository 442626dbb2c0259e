package engine

import (
	"fmt"
	"math"
	"math/bits"

	bd "chess-engine/board"
)

// MaxDepth bounds ply-indexed tables (killers, PV length); matches the
// engine's MAX_PLY.
const MaxDepth = 128

var nodesChecked = 0

func hasMinorOrMajorPiece(b *bd.Board) (wCount int, bCount int) {
	white := b.Bitboards(bd.White)
	black := b.Bitboards(bd.Black)
	wCount = bits.OnesCount64(white.Bishops | white.Knights | white.Rooks | white.Queens)
	bCount = bits.OnesCount64(black.Bishops | black.Knights | black.Rooks | black.Queens)
	return wCount, bCount
}

func getPVLineString(pvLine PVLine) (theMoves string) {
	for _, move := range pvLine.Moves {
		theMoves += " "
		theMoves += move.String()
	}
	return theMoves
}

// Taken from Blunder chess engine and just slightly modified, since I'm very lazy; works great though :)
func getMateOrCPScore(score int) string {
	mateValue := int(Checkmate)
	mateThreshold := int(Checkmate) - MaxDepth

	if score >= mateThreshold {
		pliesToMate := mateValue - score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		mateInN := (pliesToMate + 1) / 2
		return fmt.Sprintf("mate %d", mateInN)
	} else if score <= -mateThreshold {
		pliesToMate := mateValue + score // score is negative here
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		mateInN := (pliesToMate + 1) / 2
		return fmt.Sprintf("mate %d", -mateInN)
	}

	return fmt.Sprintf("cp %d", score)
}

func ResetForNewGame() {
	TT.clearTT()
	stateStack = stateStack[:0]
	ClearHistoryTable()
	KillerMoveTable.ClearKillers()
	prevSearchScore = 0
}

func dumpRootMoveOrdering(board *bd.Board) {
	legalMoves := board.GenerateLegalMoves()
	scoredMoves := scoreMovesList(board, legalMoves, 0, 0, 0)
	for i := uint8(0); i < uint8(len(scoredMoves.moves)); i++ {
		orderNextMove(i, &scoredMoves)
	}

	fmt.Println("info string move ordering (start position)")
	for idx, entry := range scoredMoves.moves {
		fmt.Printf("info string #%d %s score=%d\n", idx+1, entry.move.String(), entry.score)
	}
}

// computeLMRReduction implements r = floor(0.75 + ln(depth)*ln(moveIdx)/2.25),
// with one extra ply outside PV nodes, clamped so depth-1-r never drops
// below 0.
func computeLMRReduction(depth int8, moveIdx int, isPVNode bool) int8 {
	if depth < 1 || moveIdx < 1 {
		return 0
	}
	r := 0.75 + math.Log(float64(depth))*math.Log(float64(moveIdx))/2.25
	reduction := int8(math.Floor(r))
	if !isPVNode {
		reduction++
	}
	if reduction < 0 {
		reduction = 0
	}
	if reduction > depth-1 {
		reduction = depth - 1
	}
	if reduction < 0 {
		reduction = 0
	}
	return reduction
}
