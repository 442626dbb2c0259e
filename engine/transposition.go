package engine

import (
	"time"
	"unsafe"

	bd "chess-engine/board"
)

const (
	// Flags
	AlphaFlag = iota
	BetaFlag
	ExactFlag

	// In MB
	TTSize      = 256
	clusterSize = 4

	// Unusable score
	UnusableScore = -32750
)

type TransTable struct {
	isInitialized bool
	entries       []TTEntry
	clusterCount  uint64
	age           uint8
}

type TTEntry struct {
	Hash  uint64
	Depth int8
	Move  bd.Move
	Score int16
	Flag  int8
	Age   uint8
}

var TranspositionTime time.Duration

func (TT *TransTable) clearTT() {
	TT.entries = nil
	TT.isInitialized = false
	TT.clusterCount = 0
	TT.age = 0
}

func (TT *TransTable) init() {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	if entrySize == 0 {
		entrySize = 1
	}
	totalBytes := uint64(TTSize) * 1024 * 1024
	clusterBytes := entrySize * clusterSize
	if clusterBytes == 0 {
		clusterBytes = entrySize
	}
	clusterCount := totalBytes / clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}
	TT.clusterCount = clusterCount
	TT.entries = make([]TTEntry, TT.clusterCount*clusterSize)
	TT.isInitialized = true
}

// Resize rebuilds the table for a requested size in MB, called from the UCI
// Hash option and the XBoard memory command. The table is cleared in the
// process.
func (TT *TransTable) Resize(megabytes int) {
	if megabytes < 1 {
		megabytes = 1
	}
	if megabytes > 4096 {
		megabytes = 4096
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	if entrySize == 0 {
		entrySize = 1
	}
	totalBytes := uint64(megabytes) * 1024 * 1024
	clusterBytes := entrySize * clusterSize
	clusterCount := totalBytes / clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}
	TT.clusterCount = clusterCount
	TT.entries = make([]TTEntry, TT.clusterCount*clusterSize)
	TT.isInitialized = true
	TT.age = 0
}

// newGeneration bumps the age counter at the start of each
// iterative-deepening root iteration, feeding the age-based replacement
// scheme. ucinewgame does not bump it: clearTT drops the table and resets the
// age to 0.
func (TT *TransTable) newGeneration() {
	TT.age++
}

// checkmate16 mirrors rootsearch's mate-detection threshold (Checkmate minus
// MaxDepth) at int16 width: every mate score the search ever produces is
// Checkmate-ply or -Checkmate+ply with ply < MaxDepth, so a bare 30000
// threshold never triggers and the mate-distance adjustment below would be
// dead code.
const checkmate16 int16 = 30000 - int16(MaxDepth)

func (TT *TransTable) useEntry(ttEntry *TTEntry, hash uint64, depth int8, alpha int16, beta int16, ply int8, excludedMove bd.Move) (usable bool, score int16) {
	score = UnusableScore
	usable = false
	if ttEntry != nil && ttEntry.Hash == hash {
		if excludedMove != 0 && ttEntry.Move == excludedMove {
			return false, score
		}
		if ttEntry.Depth >= depth {
			norm := ttEntry.Score
			if norm > checkmate16 {
				norm -= int16(ply)
			} else if norm < -checkmate16 {
				norm += int16(ply)
			}
			switch ttEntry.Flag {
			case ExactFlag:
				usable = true
				score = norm
			case AlphaFlag:
				if norm <= alpha {
					usable = true
					score = alpha
				}
			case BetaFlag:
				if norm >= beta {
					usable = true
					score = beta
				}
			}
		}
	}
	return usable, score
}

func (TT *TransTable) getEntry(hash uint64) (entry *TTEntry, found bool) {
	if TT.clusterCount == 0 {
		return nil, false
	}

	clusterIndex := hash % TT.clusterCount
	start := int(clusterIndex * clusterSize)
	for i := 0; i < clusterSize; i++ {
		next := &TT.entries[start+i]
		if next.Hash == hash {
			return next, true
		}
	}
	return nil, false
}

// ageDistance returns how many generations old an entry is relative to the
// table's current age, wrapping around the uint8 counter.
func ageDistance(entryAge, curAge uint8) uint8 {
	return curAge - entryAge
}

// storeEntry replaces the cluster slot that minimizes (is_different_key,
// age_distance, depth): prefer an empty slot, then the oldest other-key
// entry, then the shallowest entry, matching spec's depth-preferred-with-
// aging replacement policy.
func (TT *TransTable) storeEntry(hash uint64, depth int8, ply int8, move bd.Move, score int16, flag int8) {
	if TT.clusterCount == 0 {
		return
	}

	clusterIndex := hash % TT.clusterCount
	base := int(clusterIndex * clusterSize)

	if score > checkmate16 {
		score += int16(ply)
	}
	if score < -checkmate16 {
		score -= int16(ply)
	}

	targetIdx := -1
	for i := 0; i < clusterSize; i++ {
		idx := base + i
		if TT.entries[idx].Hash == hash {
			targetIdx = idx
			break
		}
	}

	if targetIdx == -1 {
		for i := 0; i < clusterSize; i++ {
			idx := base + i
			if TT.entries[idx].Hash == 0 {
				targetIdx = idx
				break
			}
		}
	}

	if targetIdx == -1 {
		targetIdx = base
		bestAgeDist := ageDistance(TT.entries[base].Age, TT.age)
		bestDepth := TT.entries[base].Depth
		for i := 1; i < clusterSize; i++ {
			idx := base + i
			ad := ageDistance(TT.entries[idx].Age, TT.age)
			d := TT.entries[idx].Depth
			if ad > bestAgeDist || (ad == bestAgeDist && d < bestDepth) {
				bestAgeDist = ad
				bestDepth = d
				targetIdx = idx
			}
		}
	}

	entry := &TT.entries[targetIdx]
	entry.Hash = hash
	entry.Depth = depth
	entry.Move = move
	entry.Flag = flag
	entry.Score = score
	entry.Age = TT.age
}
