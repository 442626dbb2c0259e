package main

import (
	"testing"

	bd "chess-engine/board"
	"chess-engine/engine"
)

func BenchmarkStartSearchFromStartpos(b *testing.B) {
	board, err := bd.ParseFEN(startFEN)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	engine.ResetStateTracking(board)
	for i := 0; i < b.N; i++ {
		engine.ResetForNewGame()
		engine.ResetStateTracking(board)
		engine.StartSearch(board, 6, 1000, 0, 0, false)
	}
}

func TestDetectProtocolFromFirstLine(t *testing.T) {
	cases := map[string]string{
		"uci":               "uci",
		"xboard":            "xboard",
		"protover 2":        "xboard",
		"position startpos": "uci",
	}
	for line, want := range cases {
		got := detectProtocol(line)
		if got != want {
			t.Errorf("detectProtocol(%q) = %q, want %q", line, got, want)
		}
	}
}
