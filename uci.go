package main

import (
	"bufio"
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	bd "chess-engine/board"
	"chess-engine/engine"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func runUCI(scanner *bufio.Scanner, board *bd.Board) {
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name GooseEngine Alpha version 0.2")
			fmt.Println("id author Goose")
			fmt.Println("option name Hash type spin default 256 min 1 max 4096")
			fmt.Println("option name PrintCutStats type check default false")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			*board = *mustParseFEN(startFEN)
			engine.ResetForNewGame()
			engine.ResetStateTracking(board)
		case "quit":
			return
		case "stop":
			engine.GlobalStop = true
		case "d":
			printBoardDump(board)
		case "eval":
			printEvalBreakdown(board)
		case "perft":
			runPerftCommand(board, tokens[1:])
		case "go":
			uciGo(line, board)
		case "position":
			uciPosition(line, board)
		case "setoption":
			uciSetOption(line)
		default:
			fmt.Println("info string Unknown command:", line)
		}
	}
}

func mustParseFEN(fen string) *bd.Board {
	b, err := bd.ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func uciGo(line string, board *bd.Board) {
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip "go"

	var wTime, bTime, wInc, bInc, movesToGo, depthToUse, moveTime, nodes int
	infinite := false

	for goScanner.Scan() {
		switch strings.ToLower(goScanner.Text()) {
		case "infinite":
			infinite = true
		case "wtime":
			if goScanner.Scan() {
				wTime, _ = strconv.Atoi(goScanner.Text())
			}
		case "btime":
			if goScanner.Scan() {
				bTime, _ = strconv.Atoi(goScanner.Text())
			}
		case "winc":
			if goScanner.Scan() {
				wInc, _ = strconv.Atoi(goScanner.Text())
			}
		case "binc":
			if goScanner.Scan() {
				bInc, _ = strconv.Atoi(goScanner.Text())
			}
		case "movestogo":
			if goScanner.Scan() {
				movesToGo, _ = strconv.Atoi(goScanner.Text())
			}
		case "depth":
			if goScanner.Scan() {
				depthToUse, _ = strconv.Atoi(goScanner.Text())
			}
		case "movetime":
			if goScanner.Scan() {
				moveTime, _ = strconv.Atoi(goScanner.Text())
			}
		case "nodes":
			if goScanner.Scan() {
				nodes, _ = strconv.Atoi(goScanner.Text())
			}
		default:
		}
	}

	var timeToUse, incToUse int
	if board.SideToMove() == bd.White {
		timeToUse, incToUse = wTime, wInc
	} else {
		timeToUse, incToUse = bTime, bInc
	}

	useCustomDepth := false
	if depthToUse > 0 {
		useCustomDepth = true
	} else {
		// StartSearch takes an int8 depth, which MaxDepth (128) overflows.
		depthToUse = int(engine.MaxDepth) - 1
	}

	if moveTime > 0 {
		timeToUse = moveTime
		movesToGo = 1
		incToUse = 0
	}
	if infinite {
		useCustomDepth = true
		timeToUse = 0
	}
	if timeToUse <= 0 && !useCustomDepth {
		timeToUse = 300000
	}

	if nodes > 0 {
		engine.NodeLimit = uint64(nodes)
	} else {
		engine.NodeLimit = 0
	}

	started := startSearchAsync(func() {
		bestMove := engine.StartSearch(board, int8(depthToUse), timeToUse, incToUse, movesToGo, useCustomDepth)
		fmt.Println("bestmove", bestMove)
	})
	if !started {
		fmt.Println("info string search already running")
	}
}

func uciPosition(line string, board *bd.Board) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip "position"
	if !posScanner.Scan() {
		fmt.Println("info string Malformed position command")
		return
	}

	switch strings.ToLower(posScanner.Text()) {
	case "startpos":
		*board = *mustParseFEN(startFEN)
		posScanner.Scan()
	case "fen":
		fenstr := ""
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fenstr += posScanner.Text() + " "
		}
		fenstr = strings.TrimSpace(fenstr)
		if fenstr == "" {
			fmt.Println("info string Invalid fen position")
			return
		}
		parsed, err := bd.ParseFEN(fenstr)
		if err != nil {
			fmt.Println("info string Invalid fen position:", err)
			return
		}
		*board = *parsed
	default:
		fmt.Println("info string Invalid position subcommand")
		return
	}

	engine.ResetStateTracking(board)

	if strings.ToLower(posScanner.Text()) != "moves" {
		return
	}
	for posScanner.Scan() {
		applyMoveString(board, posScanner.Text())
	}
}

// applyMoveString resolves a long-algebraic move string against the legal
// move list and plays it, recording state for repetition/draw detection.
func applyMoveString(board *bd.Board, moveStr string) {
	parsed, err := bd.ParseMove(moveStr)
	if err != nil {
		fmt.Println("info string Contingency move parsing failed")
		return
	}
	move, found := board.FindLegalMove(parsed.From(), parsed.To(), parsed.PromotionPieceType())
	if !found {
		fmt.Println("info string Move", moveStr, "not found for position", board.ToFEN())
		return
	}
	board.Apply(move)
	engine.RecordState(board)
}

func uciSetOption(line string) {
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip "setoption"

	var name, value string
	for goScanner.Scan() {
		switch strings.ToLower(goScanner.Text()) {
		case "name":
			if goScanner.Scan() {
				name = strings.ToLower(goScanner.Text())
			}
		case "value":
			if goScanner.Scan() {
				value = goScanner.Text()
			}
		}
	}

	switch name {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil {
			engine.TT.Resize(mb)
		}
	case "printcutstats":
		engine.PrintCutStats = strings.EqualFold(value, "true")
	default:
		fmt.Println("info string Unknown option:", name)
	}
}

// pieceGlyph renders a piece the way "d" displays a board: uppercase FEN
// letters for White, lowercase for Black, "." for an empty square.
func pieceGlyph(p bd.Piece) byte {
	if p == bd.NoPiece {
		return '.'
	}
	var ch byte
	switch p.Type() {
	case bd.PieceTypePawn:
		ch = 'p'
	case bd.PieceTypeKnight:
		ch = 'n'
	case bd.PieceTypeBishop:
		ch = 'b'
	case bd.PieceTypeRook:
		ch = 'r'
	case bd.PieceTypeQueen:
		ch = 'q'
	case bd.PieceTypeKing:
		ch = 'k'
	}
	if p.Color() == bd.White {
		ch -= 'a' - 'A'
	}
	return ch
}

// printBoardDump prints the position as an 8x8 grid (rank 8 down to rank 1),
// followed by its FEN, Zobrist key, and the bitboard of pieces giving check
// to the side to move.
func printBoardDump(board *bd.Board) {
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("  +---+---+---+---+---+---+---+---+\n")
		fmt.Printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := bd.Square(rank*8 + file)
			fmt.Printf("| %c ", pieceGlyph(board.PieceAt(sq)))
		}
		fmt.Println("|")
	}
	fmt.Println("  +---+---+---+---+---+---+---+---+")
	fmt.Println("    a   b   c   d   e   f   g   h")
	fmt.Println()
	fmt.Println("Fen:", board.ToFEN())
	fmt.Printf("Key: %X\n", board.Hash())

	side := board.SideToMove()
	kingSq := bd.Square(bits.TrailingZeros64(board.Bitboards(side).Kings))
	checkers := board.AttackersTo(kingSq, board.AllOccupancy()) & board.ColorOccupancy(side.Other())
	fmt.Printf("Checkers: %016X\n", checkers)
}

// printEvalBreakdown prints the component sub-totals that feed Evaluation,
// each already tapered and signed from the side to move's perspective.
func printEvalBreakdown(board *bd.Board) {
	b := engine.EvaluationBreakdown(board)
	fmt.Println("info string eval material/psqt", b.MaterialPSQT)
	fmt.Println("info string eval pawn structure", b.PawnStructure)
	fmt.Println("info string eval bishop pair", b.BishopPair)
	fmt.Println("info string eval rook files", b.RookFile)
	fmt.Println("info string eval total", b.Total)
}

// runPerftCommand handles "perft <N>" and "perft <N> divide" per spec.md's
// interface table, mirroring cmd/perft's -divide output format.
func runPerftCommand(board *bd.Board, args []string) {
	depth := 5
	divide := false
	for _, tok := range args {
		if n, err := strconv.Atoi(tok); err == nil {
			depth = n
			continue
		}
		if strings.EqualFold(tok, "divide") {
			divide = true
		}
	}

	if !divide {
		fmt.Println(bd.Perft(board, depth))
		return
	}

	div := bd.PerftDivide(board, depth)
	type kv struct {
		m bd.Move
		n uint64
	}
	arr := make([]kv, 0, len(div))
	var sum uint64
	for m, n := range div {
		arr = append(arr, kv{m, n})
		sum += n
	}
	sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
	for _, x := range arr {
		fmt.Printf("%s: %d\n", x.m.String(), x.n)
	}
	fmt.Printf("Total: %d\n", sum)
}
