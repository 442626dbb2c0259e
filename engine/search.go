package engine

import (
	"fmt"
	"math/bits"
	"time"

	bd "chess-engine/board"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore  int32 = 32000
	Checkmate int32 = 30000
	DrawScore int32 = 0
)

var ttMoveAvailable uint64
var ttMoveNotAvailable uint64

var SearchTime time.Duration
var searchShouldStop bool

// =============================================================================
// PRUNING MARGINS
// =============================================================================
var RFPMargin int32 = 80
var NullMoveMinDepth int8 = 3
var DeltaMargin int32 = 200

var aspirationWindowSize int32 = 15
var prevSearchScore int32 = 0

var TT TransTable
var timeHandler TimeHandler
var GlobalStop = false

// NodeLimit caps the total nodes searched across the whole iterative
// deepening run, 0 meaning unlimited; set from UCI's `go nodes N`.
var NodeLimit uint64

// StartSearch drives iterative deepening from depth 1 to maxDepth (or until
// stopped/out of time) and returns the best move found, in long algebraic
// notation.
func StartSearch(board *bd.Board, maxDepth int8, remainingMs int, incrementMs int, movesToGo int, useCustomDepth bool) string {
	ensureStateStackSynced(board)

	if !TT.isInitialized {
		TT.init()
	}
	GlobalStop = false
	searchShouldStop = false
	nodesChecked = 0

	timeHandler.initTimemanagement(remainingMs, incrementMs, movesToGo, useCustomDepth)
	timeHandler.StartTime()
	resetCutStats()

	_, bestMove := rootsearch(board, maxDepth, useCustomDepth)
	if PrintCutStats {
		dumpCutStats()
	}
	return bestMove.String()
}

// rootsearch runs iterative deepening with aspiration windows, widening and
// re-searching the same depth on a miss before moving on.
func rootsearch(b *bd.Board, maxDepth int8, useCustomDepth bool) (int32, bd.Move) {
	var timeSpent int64
	alpha := -MaxScore
	beta := MaxScore
	var bestScore int32 = -MaxScore
	rootIndex := len(stateStack) - 1

	if prevSearchScore != 0 {
		alpha = prevSearchScore - aspirationWindowSize
		beta = prevSearchScore + aspirationWindowSize
	}

	var nullMove bd.Move
	var pvLine PVLine
	var prevPVLine PVLine

	currentWindow := aspirationWindowSize

	for depth := int8(1); depth <= maxDepth; depth++ {
		TT.newGeneration()
		if !useCustomDepth && depth > 1 {
			if timeHandler.SoftTimeExceeded() && !timeHandler.ShouldExtendTime() {
				break
			}
			if timeHandler.ShouldStopEarly() {
				break
			}
		}

		pvLine.Clear()
		mateFound := false

		if depth < 5 {
			alpha, beta = -MaxScore, MaxScore
		}

		startTime := time.Now()
		score := negamax(b, alpha, beta, depth, 0, &pvLine, nullMove, false, rootIndex)
		timeSpent += time.Since(startTime).Milliseconds()

		if searchShouldStop || GlobalStop {
			if len(prevPVLine.Moves) == 0 && len(pvLine.Moves) > 0 {
				bestScore = score
				prevSearchScore = bestScore
				prevPVLine = pvLine.Clone()
			}
			break
		}

		// Aspiration window miss: widen and retry the same depth.
		if depth >= 5 && (score <= alpha || score >= beta) {
			if currentWindow >= MaxScore {
				currentWindow = MaxScore
			} else {
				currentWindow *= 2
			}
			alpha = score - currentWindow
			beta = score + currentWindow
			if alpha < -MaxScore {
				alpha = -MaxScore
			}
			if beta > MaxScore {
				beta = MaxScore
			}
			depth--
			continue
		}

		if (score > Checkmate-int32(MaxDepth) || score < -Checkmate+int32(MaxDepth)) && len(pvLine.Moves) > 0 {
			mateFound = true
		}

		if depth >= 5 {
			alpha = score - aspirationWindowSize
			beta = score + aspirationWindowSize
		}
		currentWindow = aspirationWindowSize
		bestScore = score

		if len(pvLine.Moves) > 0 {
			timeHandler.UpdateStability(int16(score), uint32(pvLine.Moves[0]))
		}
		if !useCustomDepth && timeHandler.ShouldExtendTime() {
			timeHandler.ExtendTime()
		}

		prevSearchScore = bestScore
		prevPVLine = pvLine.Clone()

		if timeSpent == 0 {
			timeSpent = 1
		}
		nps := uint64(float64(nodesChecked*1000) / float64(timeSpent))
		fmt.Println(
			"info depth", depth,
			"score", getMateOrCPScore(int(score)),
			"nodes", nodesChecked,
			"time", timeSpent,
			"nps", nps,
			"pv", getPVLineString(pvLine),
		)

		if mateFound {
			break
		}
	}

	searchShouldStop = false
	return bestScore, prevPVLine.GetPVMove()
}

// negamax implements the PVS search at each node: time/stop polling,
// mate-distance pruning, draw detection, TT probe, static eval, reverse
// futility and null-move pruning, check extension, and the staged PVS move
// loop with late move reductions.
func negamax(b *bd.Board, alpha, beta int32, depth int8, ply int8, pvLine *PVLine, prevMove bd.Move, didNull bool, rootIndex int) int32 {
	nodesChecked++

	if nodesChecked&2047 == 0 {
		if timeHandler.TimeStatus() || (NodeLimit > 0 && uint64(nodesChecked) >= NodeLimit) {
			searchShouldStop = true
		}
	}
	if GlobalStop || searchShouldStop {
		return 0
	}

	isPVNode := (beta - alpha) > 1
	isRoot := ply == 0

	matedScore := -Checkmate + int32(ply)
	mateScore := Checkmate - int32(ply)
	if alpha < matedScore {
		alpha = matedScore
	}
	if beta > mateScore {
		beta = mateScore
	}
	if alpha >= beta {
		return alpha
	}

	if !isRoot {
		if isDraw(int(ply), rootIndex) || isInsufficientMaterial(b) {
			return DrawScore
		}
		if alpha < DrawScore && upcomingRepetition(int(ply), rootIndex) {
			alpha = DrawScore
		}
	}

	if int(ply) >= MaxDepth {
		return Evaluation(b)
	}

	inCheck := b.InCheck(b.SideToMove())
	if inCheck {
		depth++
	}

	if depth <= 0 {
		var qPV PVLine
		return quiescence(b, alpha, beta, &qPV, ply, rootIndex)
	}

	posHash := b.Hash()

	ttEntry, ttHit := TT.getEntry(posHash)
	if ttHit {
		ttMoveAvailable++
	} else {
		ttMoveNotAvailable++
	}
	usable, ttScore := TT.useEntry(ttEntry, posHash, depth, int16(alpha), int16(beta), ply, 0)
	if usable && !isRoot && !isPVNode {
		cutStats.TTCutoffs++
		return int32(ttScore)
	}

	var ttMove bd.Move
	if ttHit {
		ttMove = ttEntry.Move
	}

	var staticScore int32
	if !inCheck {
		staticScore = Evaluation(b)
	}

	wCount, bCount := hasMinorOrMajorPiece(b)
	var sideHasPieces bool
	if b.SideToMove() == bd.White {
		sideHasPieces = wCount > 0
	} else {
		sideHasPieces = bCount > 0
	}

	// Reverse futility pruning: if the static eval already clears beta by a
	// depth-scaled margin, assume the rest of the tree won't change that.
	if !inCheck && !isPVNode && !isRoot && depth <= 7 && abs32(beta) < Checkmate {
		margin := RFPMargin * int32(depth)
		if staticScore-margin >= beta {
			cutStats.StaticNullCutoffs++
			return staticScore - margin
		}
	}

	// Null-move pruning.
	if !inCheck && !isPVNode && !isRoot && !didNull && sideHasPieces && depth >= NullMoveMinDepth && staticScore >= beta {
		st := b.MakeNullMove()
		pushState(b)
		var nullPV PVLine
		R := int8(3) + depth/4
		if R > depth-1 {
			R = depth - 1
		}
		score := -negamax(b, -beta, -beta+1, depth-1-R, ply+1, &nullPV, 0, true, rootIndex)
		popState()
		b.UnmakeNullMove(st)

		if score >= beta {
			cutStats.NullMoveCutoffs++
			if score > Checkmate-int32(MaxDepth) {
				score = beta
			}
			return score
		}
	}

	allMoves := b.GenerateMovesInto(moveBufFor(ply))
	storeMoveBuf(ply, allMoves)
	if len(allMoves) == 0 {
		if inCheck {
			return -Checkmate + int32(ply)
		}
		return DrawScore
	}

	moveList := scoreMovesList(b, allMoves, ply, ttMove, prevMove)

	var bestScore int32 = -MaxScore
	var bestMove bd.Move
	ttFlag := int8(AlphaFlag)
	legalMoves := 0

	quietMovesTried := make([]bd.Move, 0, 16)

	var childPV PVLine
	for index := uint8(0); index < uint8(len(moveList.moves)); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move
		legalMoves++

		isCapture := move.IsCapture()
		givesCheck := b.GivesCheck(move)
		isQuiet := !isCapture && move.PromotionPieceType() == bd.PieceTypeNone

		if !isCapture {
			quietMovesTried = append(quietMovesTried, move)
		}

		_, st := b.MakeMove(move)
		pushState(b)

		var score int32
		if legalMoves == 1 {
			score = -negamax(b, -beta, -alpha, depth-1, ply+1, &childPV, move, false, rootIndex)
		} else {
			reduction := int8(0)
			if legalMoves >= 4 && depth >= 3 && isQuiet && !givesCheck && !inCheck {
				reduction = computeLMRReduction(depth, legalMoves, isPVNode)
			}

			score = -negamax(b, -alpha-1, -alpha, depth-1-reduction, ply+1, &childPV, move, false, rootIndex)

			if score > alpha && reduction > 0 {
				score = -negamax(b, -alpha-1, -alpha, depth-1, ply+1, &childPV, move, false, rootIndex)
			}
			if isPVNode && score > alpha && score < beta {
				score = -negamax(b, -beta, -alpha, depth-1, ply+1, &childPV, move, false, rootIndex)
			}
		}

		popState()
		b.UnmakeMove(move, st)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if score >= beta {
			ttFlag = BetaFlag
			cutStats.BetaCutoffs++
			if !isCapture {
				KillerMoveTable.InsertKiller(move, ply)
				storeCounter(b.SideToMove(), prevMove, move)
				incrementHistoryScore(b.SideToMove(), move, depth)
				for _, failed := range quietMovesTried {
					if failed != move {
						decrementHistoryScoreBy(b.SideToMove(), failed, depth)
					}
				}
			}
			break
		}

		if score > alpha {
			alpha = score
			ttFlag = ExactFlag
			pvLine.Update(move, childPV)
		}
		childPV.Clear()
	}

	if !GlobalStop && !searchShouldStop {
		TT.storeEntry(posHash, depth, ply, bestMove, int16(bestScore), ttFlag)
	}

	return bestScore
}

// quiescence resolves tactical sequences at the search horizon: captures,
// including capturing promotions (plus check evasions when in check), SEE-
// and delta-pruned. Non-capturing promotions are not searched here.
func quiescence(b *bd.Board, alpha, beta int32, pvLine *PVLine, ply int8, rootIndex int) int32 {
	nodesChecked++
	if nodesChecked&2047 == 0 {
		if timeHandler.TimeStatus() || (NodeLimit > 0 && uint64(nodesChecked) >= NodeLimit) {
			searchShouldStop = true
		}
	}
	if GlobalStop || searchShouldStop {
		return 0
	}
	if int(ply) >= MaxDepth {
		return Evaluation(b)
	}

	inCheck := b.InCheck(b.SideToMove())

	standPat := Evaluation(b)
	if !inCheck {
		if standPat >= beta {
			cutStats.QStandPatCutoffs++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	bestScore := standPat
	if inCheck {
		bestScore = -MaxScore
	}

	var candidates []bd.Move
	var moveList moveList
	if inCheck {
		candidates = b.GenerateMovesInto(moveBufFor(ply))
		storeMoveBuf(ply, candidates)
		moveList = scoreMovesList(b, candidates, ply, 0, 0)
	} else {
		candidates = b.GenerateCapturesInto(moveBufFor(ply))
		storeMoveBuf(ply, candidates)
		moveList = scoreMovesListCaptures(b, candidates, ply)
	}

	var childPV PVLine
	movesSearched := 0

	for index := uint8(0); index < uint8(len(moveList.moves)); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move

		if !inCheck {
			if move.IsCapture() && !SeeGE(b, move, 0) {
				continue
			}

			victimValue := int32(0)
			if move.CapturedPiece() != bd.NoPiece {
				victimValue = int32(pieceValueMG[move.CapturedPiece().Type()])
			}
			if move.PromotionPieceType() != bd.PieceTypeNone {
				victimValue += int32(pieceValueMG[move.PromotionPieceType()] - pieceValueMG[bd.PieceTypePawn])
			}
			if standPat+victimValue+DeltaMargin < alpha {
				continue
			}
		}

		_, st := b.MakeMove(move)
		pushState(b)
		movesSearched++

		score := -quiescence(b, -beta, -alpha, &childPV, ply+1, rootIndex)

		popState()
		b.UnmakeMove(move, st)

		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			cutStats.QBetaCutoffs++
			return score
		}
		if score > alpha {
			alpha = score
			pvLine.Update(move, childPV)
		}
		childPV.Clear()
	}

	if inCheck && movesSearched == 0 {
		return -Checkmate + int32(ply)
	}

	return bestScore
}

// isInsufficientMaterial reports the simple draw-by-material cases: no
// pawns or major pieces, and at most a single minor piece per side.
func isInsufficientMaterial(b *bd.Board) bool {
	white := b.Bitboards(bd.White)
	black := b.Bitboards(bd.Black)
	if white.Pawns != 0 || black.Pawns != 0 {
		return false
	}
	if white.Queens != 0 || black.Queens != 0 || white.Rooks != 0 || black.Rooks != 0 {
		return false
	}
	wMinors := bits.OnesCount64(white.Knights) + bits.OnesCount64(white.Bishops)
	bMinors := bits.OnesCount64(black.Knights) + bits.OnesCount64(black.Bishops)
	return wMinors <= 1 && bMinors <= 1
}
