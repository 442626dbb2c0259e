package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	bd "chess-engine/board"
	"chess-engine/engine"
)

type xboardState struct {
	board         *bd.Board
	computerColor bd.Color
	forceMode     bool
	post          bool
	depthLimit    int // 0 = no limit
	timeWhite     int // ms
	timeBlack     int // ms
	increment     int // ms
	movesPerTC    int // 0 = sudden death
}

// runXBoard implements the XBoard/CECP command loop per spec.md §6.3.
func runXBoard(scanner *bufio.Scanner, board *bd.Board) {
	st := &xboardState{
		board:         board,
		computerColor: bd.Black,
		forceMode:     true,
		post:          true,
		timeWhite:     300000,
		timeBlack:     300000,
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "xboard":
			fmt.Println()
		case "protover":
			xboardFeatures()
		case "accepted", "rejected", "computer", "name", "rating", "ics", "cores", "egtpath", "option":
			// acknowledged, nothing to do
		case "new":
			*st.board = *mustParseFEN(startFEN)
			engine.ResetForNewGame()
			engine.ResetStateTracking(st.board)
			st.computerColor = bd.Black
			st.forceMode = false
			st.depthLimit = 0
		case "force":
			st.forceMode = true
			engine.GlobalStop = true
		case "go":
			st.computerColor = st.board.SideToMove()
			st.forceMode = false
			xboardThinkAndMove(st)
		case "playother":
			st.computerColor = st.board.SideToMove().Other()
			st.forceMode = false
		case "white":
			st.computerColor = bd.Black
			st.forceMode = false
		case "black":
			st.computerColor = bd.White
			st.forceMode = false
		case "level":
			xboardLevel(st, args)
		case "st":
			if secs, err := strconv.Atoi(orFirst(args)); err == nil {
				st.timeWhite = secs * 1000
				st.timeBlack = secs * 1000
				st.movesPerTC = 1
			}
		case "sd":
			if depth, err := strconv.Atoi(orFirst(args)); err == nil {
				st.depthLimit = depth
			}
		case "time":
			if cs, err := strconv.Atoi(orFirst(args)); err == nil {
				setColorTime(st, st.computerColor, cs*10)
			}
		case "otim":
			if cs, err := strconv.Atoi(orFirst(args)); err == nil {
				setColorTime(st, st.computerColor.Other(), cs*10)
			}
		case "usermove":
			if len(args) == 0 {
				continue
			}
			if !xboardTryMove(st, args[0]) {
				fmt.Println("Illegal move:", args[0])
				continue
			}
			if !st.forceMode && st.board.SideToMove() == st.computerColor {
				xboardThinkAndMove(st)
			}
		case "?":
			engine.GlobalStop = true
		case "ping":
			fmt.Println("pong", orFirst(args))
		case "draw":
			if xboardIsDraw(st) {
				fmt.Println("offer draw")
			}
		case "result":
			st.forceMode = true
			engine.GlobalStop = true
		case "setboard":
			fen := strings.Join(args, " ")
			parsed, err := bd.ParseFEN(fen)
			if err != nil {
				fmt.Println("Error (bad fen):", fen)
				continue
			}
			*st.board = *parsed
			engine.ResetStateTracking(st.board)
		case "hint":
			depth := 6
			best := engine.StartSearch(st.board, int8(depth), 500, 0, 1, true)
			fmt.Println("Hint:", best)
		case "undo", "remove":
			// position history isn't retained across moves; GUIs that rely on
			// undo/remove should resend the position via setboard.
		case "hard":
			// pondering is a declared non-goal; accepted and ignored
		case "easy":
		case "post":
			st.post = true
		case "nopost":
			st.post = false
		case "analyze":
			xboardAnalyze(st)
		case "exit":
			st.forceMode = true
			engine.GlobalStop = true
		case ".":
			fmt.Println("stat01: 0 0 0 0 0")
		case "memory":
			if mb, err := strconv.Atoi(orFirst(args)); err == nil {
				engine.TT.Resize(mb)
			}
		case "quit":
			return
		default:
			if !xboardTryMove(st, tokens[0]) {
				fmt.Println("Error (unknown command):", tokens[0])
			}
		}
	}
}

func orFirst(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func setColorTime(st *xboardState, color bd.Color, ms int) {
	if color == bd.White {
		st.timeWhite = ms
	} else {
		st.timeBlack = ms
	}
}

func xboardFeatures() {
	features := []string{
		`done=0`, `myname="GooseEngine Alpha 0.2"`, `variants="normal"`,
		`setboard=1`, `ping=1`, `playother=1`, `san=0`, `usermove=1`,
		`time=1`, `draw=1`, `sigint=0`, `sigterm=0`, `reuse=1`, `analyze=1`,
		`colors=0`, `ics=0`, `name=1`, `pause=0`, `nps=0`, `debug=1`,
		`memory=1`, `smp=0`, `egt=""`, `done=1`,
	}
	for _, f := range features {
		fmt.Println("feature", f)
	}
}

func xboardLevel(st *xboardState, args []string) {
	if len(args) < 3 {
		return
	}
	mps, _ := strconv.Atoi(args[0])
	st.movesPerTC = mps

	var baseMs int
	if strings.Contains(args[1], ":") {
		parts := strings.SplitN(args[1], ":", 2)
		mins, _ := strconv.Atoi(parts[0])
		secs := 0
		if len(parts) > 1 {
			secs, _ = strconv.Atoi(parts[1])
		}
		baseMs = (mins*60 + secs) * 1000
	} else {
		mins, _ := strconv.Atoi(args[1])
		baseMs = mins * 60 * 1000
	}
	st.timeWhite = baseMs
	st.timeBlack = baseMs

	incSecs, _ := strconv.Atoi(args[2])
	st.increment = incSecs * 1000
}

func xboardTryMove(st *xboardState, moveStr string) bool {
	parsed, err := bd.ParseMove(moveStr)
	if err != nil {
		return false
	}
	move, found := st.board.FindLegalMove(parsed.From(), parsed.To(), parsed.PromotionPieceType())
	if !found {
		return false
	}
	st.board.Apply(move)
	engine.RecordState(st.board)
	return true
}

func xboardThinkAndMove(st *xboardState) {
	var timeToUse, incToUse int
	if st.computerColor == bd.White {
		timeToUse, incToUse = st.timeWhite, st.increment
	} else {
		timeToUse, incToUse = st.timeBlack, st.increment
	}

	useCustomDepth := st.depthLimit > 0
	depth := st.depthLimit
	if depth <= 0 {
		// StartSearch takes an int8 depth, which MaxDepth (128) overflows.
		depth = int(engine.MaxDepth) - 1
	}

	board := st.board
	started := startSearchAsync(func() {
		best := engine.StartSearch(board, int8(depth), timeToUse, incToUse, st.movesPerTC, useCustomDepth)

		move, found := xboardParseLongAlgebraic(board, best)
		if found {
			board.Apply(move)
			engine.RecordState(board)
		}

		fmt.Println("move", best)

		if xboardIsDraw(st) {
			fmt.Println("offer draw")
		}
	})
	if !started {
		fmt.Println("Error (search already running)")
	}
}

func xboardParseLongAlgebraic(board *bd.Board, moveStr string) (bd.Move, bool) {
	parsed, err := bd.ParseMove(moveStr)
	if err != nil {
		return 0, false
	}
	return board.FindLegalMove(parsed.From(), parsed.To(), parsed.PromotionPieceType())
}

func xboardIsDraw(st *xboardState) bool {
	return st.board.IsDrawBy50() || st.board.InStalemate()
}

// xboardAnalyze runs iterative deepening with no time limit until "exit" (or
// another command that sets the shared stop flag) stops it. Each completed
// depth is printed as the search's UCI-style "info depth ..." line; XBoard's
// "post" thinking-line format is not produced, and "." only answers with a
// stat01 line. Run asynchronously like xboardThinkAndMove so those commands
// keep working while analysis is in progress.
func xboardAnalyze(st *xboardState) {
	engine.GlobalStop = false
	board := st.board
	// StartSearch takes an int8 depth, which MaxDepth (128) overflows.
	maxDepth := int(engine.MaxDepth) - 1
	if !startSearchAsync(func() {
		engine.StartSearch(board, int8(maxDepth), 0, 0, 0, true)
	}) {
		fmt.Println("Error (search already running)")
	}
}
