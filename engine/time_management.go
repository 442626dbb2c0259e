package engine

import "time"

// TimeHandler turns a UCI/CECP time control into a hard deadline for the
// current search, and lets the root loop ask for a little more when the
// score or PV is still unstable between iterations.
type TimeHandler struct {
	remainingTime int
	increment     int
	movesToGo     int

	allocatedMs int
	hardCapMs   int
	startedAt   time.Time
	deadline    time.Time

	stopSearch       bool
	isInitialized    bool
	usingCustomDepth bool

	stableDepth  int
	lastBestMove uint32
	extended     bool
}

// initTimemanagement records the time control for the move about to be
// searched. movesToGo of 0 means "unknown", treated as sudden death.
func (th *TimeHandler) initTimemanagement(remainingTime int, increment int, movesToGo int, useCustomDepth bool) {
	th.remainingTime = remainingTime
	th.increment = increment
	th.movesToGo = movesToGo
	th.stopSearch = false
	th.isInitialized = true
	th.usingCustomDepth = useCustomDepth
	th.stableDepth = 0
	th.lastBestMove = 0
	th.extended = false
}

// StartTime computes the allocation for this move: base = wtime / movestogo,
// with movestogo taken as 30 when it is 0 (unknown); a movestogo below 30 is
// used as given, not raised to 30 (movetime and st pass 1 so the whole budget
// goes to this move). alloc = base + 0.75*winc, hard-capped at wtime-100ms
// so the engine never risks flagging on a slow move.
func (th *TimeHandler) StartTime() {
	th.startedAt = time.Now()
	th.stopSearch = false

	if th.usingCustomDepth {
		return
	}

	movesToGo := th.movesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}

	base := th.remainingTime / movesToGo
	alloc := base + (th.increment*3)/4

	hardCap := th.remainingTime - 100
	if hardCap < 1 {
		hardCap = 1
	}
	if alloc > hardCap {
		alloc = hardCap
	}
	if alloc < 1 {
		alloc = 1
	}

	th.allocatedMs = alloc
	th.hardCapMs = hardCap
	th.deadline = th.startedAt.Add(time.Duration(alloc) * time.Millisecond)
}

// Update pushes the deadline out by extraMs, used by ExtendTime, never
// allowed to cross the hard time-control cap for this move.
func (th *TimeHandler) Update(extraMs int64) {
	newAlloc := th.allocatedMs + int(extraMs)
	if newAlloc > th.hardCapMs {
		newAlloc = th.hardCapMs
	}
	th.allocatedMs = newAlloc
	th.deadline = th.startedAt.Add(time.Duration(th.allocatedMs) * time.Millisecond)
}

// TimeStatus reports whether the current deadline has passed.
func (th *TimeHandler) TimeStatus() bool {
	if th.usingCustomDepth {
		return false
	}
	return time.Now().After(th.deadline)
}

// SoftTimeExceeded is TimeStatus under another name, used at iteration
// boundaries in the root loop to keep those call sites self-documenting.
func (th *TimeHandler) SoftTimeExceeded() bool {
	return th.TimeStatus()
}

// ShouldStopEarly reports whether starting another iteration would risk the
// hard cap: a new iteration aborts if more than 1.5x the allocation has
// already elapsed, since the next iteration usually costs several times
// the previous one.
func (th *TimeHandler) ShouldStopEarly() bool {
	if th.usingCustomDepth {
		return false
	}
	elapsed := time.Since(th.startedAt).Milliseconds()
	return elapsed > int64(th.allocatedMs)*3/2
}

// UpdateStability tracks whether the root best move is still changing
// between iterations, the signal ShouldExtendTime uses to decide whether
// the position needs more time than the base allocation gives it.
func (th *TimeHandler) UpdateStability(score int16, bestMove uint32) {
	if bestMove == th.lastBestMove {
		th.stableDepth++
	} else {
		th.stableDepth = 0
	}
	th.lastBestMove = bestMove
}

// ShouldExtendTime reports whether the best move has changed too recently
// to stop on the base budget. Only ever grants one extension per search.
func (th *TimeHandler) ShouldExtendTime() bool {
	if th.usingCustomDepth || th.extended {
		return false
	}
	return th.stableDepth < 2
}

// ExtendTime grants the one unstable-PV extension a search can take,
// capped at the hard time-control limit by Update.
func (th *TimeHandler) ExtendTime() {
	if th.extended {
		return
	}
	th.extended = true
	th.Update(int64(th.allocatedMs) / 2)
}
