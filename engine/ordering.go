package engine

import bd "chess-engine/board"

// Move ordering tiers. A TT move is tried first since it was good enough to
// be stored; then captures that don't lose material (split good/bad by
// SEE); then the two killers for this ply; then the counter move to
// whatever the opponent just played; then remaining quiets by history
// score; bad captures sort behind everything else, since a losing capture
// is rarely worth trying before a quiet move with a good history score.
const (
	scoreTT          int32 = 10_000_000
	scoreGoodCapture int32 = 8_000_000
	scoreKiller1     int32 = 6_000_000
	scoreKiller2     int32 = 5_000_000
	scoreCounter     int32 = 4_000_000
	scoreBadCapture  int32 = -2_000_000
)

// pieceOrderRank gives captures a total order by victim then attacker, used
// only to break ties within a tier; it is not a material value.
var pieceOrderRank = [7]int32{
	bd.PieceTypeNone:   0,
	bd.PieceTypePawn:   1,
	bd.PieceTypeKnight: 2,
	bd.PieceTypeBishop: 3,
	bd.PieceTypeRook:   4,
	bd.PieceTypeQueen:  5,
	bd.PieceTypeKing:   6,
}

type scoredMove struct {
	move  bd.Move
	score int32
}

type moveList struct {
	moves []scoredMove
}

// searchMoveCap bounds a node's move list the way spec's fixed-capacity
// MoveList does; it comfortably exceeds the ~218-move theoretical legal-move
// maximum, so the pooled buffers below never need to grow.
const searchMoveCap = 256

// moveBufPool and scoredBufPool are reused across the whole search tree,
// one slot per ply (negamax and quiescence never hold a live move list at
// the same ply at the same time, since negamax diverts to quiescence before
// it ever generates its own list), so the search hot path generates and
// scores moves without allocating per node.
var moveBufPool [MaxDepth + 1][]bd.Move
var scoredBufPool [MaxDepth + 1][]scoredMove

// moveBufFor returns ply's pooled move buffer, truncated to length 0 and
// ready to be filled by GenerateMovesInto/GenerateCapturesInto. Callers
// should store the (possibly grown) returned slice back with
// storeMoveBuf so a one-off over-256 position doesn't re-allocate every
// call at that ply.
func moveBufFor(ply int8) []bd.Move {
	if moveBufPool[ply] == nil {
		moveBufPool[ply] = make([]bd.Move, 0, searchMoveCap)
	}
	return moveBufPool[ply][:0]
}

func storeMoveBuf(ply int8, buf []bd.Move) {
	moveBufPool[ply] = buf
}

// scoredBufFor returns ply's pooled scoredMove buffer, sized to hold n
// moves. Falls back to a fresh allocation only if n exceeds the pool's
// capacity, which never happens for a legal chess position.
func scoredBufFor(ply int8, n int) []scoredMove {
	buf := scoredBufPool[ply]
	if buf == nil {
		buf = make([]scoredMove, 0, searchMoveCap)
		scoredBufPool[ply] = buf
	}
	if n > cap(buf) {
		return make([]scoredMove, n)
	}
	return buf[:n]
}

// orderNextMove selection-sorts the next-best move into position currIndex,
// so callers can early-return after a beta cutoff without sorting moves
// that will never be tried.
func orderNextMove(currIndex uint8, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < uint8(len(moves.moves)); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

func mvvLvaScore(victim, attacker bd.PieceType) int32 {
	return pieceOrderRank[victim]*10 - pieceOrderRank[attacker]
}

func sideIndex(side bd.Color) int {
	if side == bd.White {
		return 0
	}
	return 1
}

// scoreMovesList scores every move for the main search move loop: the TT
// move first, then captures split into good/bad by SEE, then killers, the
// counter move, and finally quiets by history score.
func scoreMovesList(b *bd.Board, moves []bd.Move, ply int8, ttMove bd.Move, prevMove bd.Move) moveList {
	side := b.SideToMove()
	sideIdx := sideIndex(side)

	out := moveList{moves: scoredBufFor(ply, len(moves))}
	for i, m := range moves {
		var score int32
		switch {
		case ttMove != 0 && m == ttMove:
			score = scoreTT
		case m.IsCapture():
			mvv := mvvLvaScore(m.CapturedPiece().Type(), m.MovedPiece().Type())
			if SeeGE(b, m, 0) {
				score = scoreGoodCapture + mvv
			} else {
				score = scoreBadCapture + mvv
			}
		case IsKiller(m, ply, &KillerMoveTable):
			if m == KillerMoveTable.KillerMoves[ply][0] {
				score = scoreKiller1
			} else {
				score = scoreKiller2
			}
		case prevMove != 0 && counterMove[sideIdx][prevMove.From()][prevMove.To()] == m:
			score = scoreCounter
		default:
			score = int32(historyMove[sideIdx][m.From()][m.To()])
		}
		out.moves[i] = scoredMove{move: m, score: score}
	}
	return out
}

// scoreMovesListCaptures scores a capture-only list for quiescence, using
// plain MVV-LVA; callers apply SEE pruning themselves before recursing.
func scoreMovesListCaptures(b *bd.Board, moves []bd.Move, ply int8) moveList {
	out := moveList{moves: scoredBufFor(ply, len(moves))}
	for i, m := range moves {
		out.moves[i] = scoredMove{
			move:  m,
			score: mvvLvaScore(m.CapturedPiece().Type(), m.MovedPiece().Type()),
		}
	}
	return out
}

/*
HISTORY / COUNTER MOVES

When a quiet move causes a beta cutoff, we remember it two ways: as the
counter move to whatever the opponent just played, and with a history
score that grows with the depth at which it cut off. Both bias future move
ordering toward moves that have worked before in a similar context.
*/

var counterMove [2][64][64]bd.Move
var historyMove [2][64][64]int32

const historyMax int32 = 16384

func storeCounter(side bd.Color, prevMove bd.Move, move bd.Move) {
	if prevMove == 0 {
		return
	}
	counterMove[sideIndex(side)][prevMove.From()][prevMove.To()] = move
}

// incrementHistoryScore rewards a quiet move that caused a beta cutoff.
func incrementHistoryScore(side bd.Color, move bd.Move, depth int8) {
	idx := sideIndex(side)
	v := &historyMove[idx][move.From()][move.To()]
	*v += int32(depth) * int32(depth)
	if *v >= historyMax {
		ageHistoryTable(idx)
	}
}

// decrementHistoryScoreBy penalizes a quiet move that was tried but did not
// cause the cutoff a sibling move did, so history doesn't only ever grow.
func decrementHistoryScoreBy(side bd.Color, move bd.Move, depth int8) {
	idx := sideIndex(side)
	v := &historyMove[idx][move.From()][move.To()]
	*v -= int32(depth)
	if *v < -historyMax {
		*v = -historyMax
	}
}

func ageHistoryTable(idx int) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			historyMove[idx][from][to] /= 2
		}
	}
}

// ClearHistoryTable resets history and counter-move tables, called on a new
// game.
func ClearHistoryTable() {
	for side := 0; side < 2; side++ {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				historyMove[side][from][to] = 0
				counterMove[side][from][to] = bd.Move(0)
			}
		}
	}
}
