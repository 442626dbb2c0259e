package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	bd "chess-engine/board"
)

// main peeks the first non-blank input line to choose a protocol: "uci"
// selects UCI, "xboard" or "protover" selects XBoard/CECP, anything else
// defaults to UCI. The peeked line is replayed into the chosen loop so no
// input is lost.
func main() {
	stdin := bufio.NewReader(os.Stdin)

	var firstLine string
	for {
		line, err := stdin.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			firstLine = trimmed
			break
		}
		if err != nil {
			return
		}
	}

	rest := io.MultiReader(strings.NewReader(firstLine+"\n"), stdin)
	scanner := bufio.NewScanner(rest)

	board, err := bd.ParseFEN(startFEN)
	if err != nil {
		panic(err)
	}

	switch detectProtocol(firstLine) {
	case "xboard":
		runXBoard(scanner, board)
	default:
		runUCI(scanner, board)
	}
}

// detectProtocol inspects a line's first token to choose a protocol: "xboard"
// or "protover" select XBoard/CECP, anything else (including "uci") defaults
// to UCI per spec.md §6.3.
func detectProtocol(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "uci"
	}
	switch strings.ToLower(fields[0]) {
	case "xboard", "protover":
		return "xboard"
	default:
		return "uci"
	}
}
