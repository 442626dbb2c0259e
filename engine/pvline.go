package engine

import bd "chess-engine/board"

// MaxPVLength is the nominal principal-variation length, equal to MaxDepth;
// PVLine itself does not cap the number of moves it holds.
const MaxPVLength = 128

// PVLine is the line of best play collected back up the search tree. Child
// nodes build their own PVLine and the parent, on an alpha improvement,
// prepends its move with Update.
type PVLine struct {
	Moves []bd.Move
}

// Clear empties the line without releasing its backing array.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update makes move the first move of the line, followed by child's line.
func (pv *PVLine) Update(move bd.Move, child PVLine) {
	pv.Moves = pv.Moves[:0]
	pv.Moves = append(pv.Moves, move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns an independent copy, used when a line must survive past the
// node that built it (e.g. the root's best line across iterations).
func (pv PVLine) Clone() PVLine {
	out := make([]bd.Move, len(pv.Moves))
	copy(out, pv.Moves)
	return PVLine{Moves: out}
}

// GetPVMove returns the line's first move, or the zero Move if empty.
func (pv PVLine) GetPVMove() bd.Move {
	if len(pv.Moves) == 0 {
		return bd.Move(0)
	}
	return pv.Moves[0]
}
