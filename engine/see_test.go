package engine

import (
	"testing"

	bd "chess-engine/board"
)

func square(coord string) bd.Square {
	if len(coord) != 2 {
		panic("invalid coordinate")
	}
	file := int(coord[0] - 'a')
	rank := int(coord[1] - '1')
	return bd.Square(rank*8 + file)
}

func TestSEEBishopTakesQueenDefendedKnightEvenTrade(t *testing.T) {
	board, err := bd.ParseFEN("6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	move, ok := board.FindLegalMove(square("c4"), square("e6"), bd.PieceTypeNone)
	if !ok {
		t.Fatalf("expected Bxe6 to be a legal move")
	}

	if !SeeGE(board, move, 0) {
		t.Fatalf("expected see_ge(Bxe6, 0) = true, Bxe6 Qxe6 trades bishop for knight evenly")
	}
}

func TestSEEHandlesEnPassantCapture(t *testing.T) {
	board, err := bd.ParseFEN("8/8/8/3pP3/8/8/8/6K1 w - d6 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	move := bd.NewMove(square("e5"), square("d6"), bd.WhitePawn, bd.BlackPawn, bd.NoPiece, bd.FlagEnPassant)
	if move.Flags() != bd.FlagEnPassant {
		t.Fatalf("expected en passant flag to be set, got %d", move.Flags())
	}
	if SeePieceValue[bd.PieceTypePawn] != 100 {
		t.Fatalf("unexpected pawn SEE value: %d", SeePieceValue[bd.PieceTypePawn])
	}

	if !SeeGE(board, move, SeePieceValue[bd.PieceTypePawn]) {
		t.Fatalf("expected en passant capture to gain a full pawn with no recapture available")
	}
	if SeeGE(board, move, SeePieceValue[bd.PieceTypePawn]+1) {
		t.Fatalf("did not expect en passant capture to gain more than a pawn")
	}
}

func TestSEERookTakesUndefendedPawn(t *testing.T) {
	board, err := bd.ParseFEN("1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	move, ok := board.FindLegalMove(square("e1"), square("e5"), bd.PieceTypeNone)
	if !ok {
		t.Fatalf("expected Rxe5 to be a legal move")
	}
	if !SeeGE(board, move, 0) {
		t.Fatalf("expected see_ge(Re1xe5, 0) = true")
	}
}

func TestSEEKnightTakesDefendedPawnLosesMaterial(t *testing.T) {
	board, err := bd.ParseFEN("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	move, ok := board.FindLegalMove(square("d3"), square("e5"), bd.PieceTypeNone)
	if !ok {
		t.Fatalf("expected Nxe5 to be a legal move")
	}
	if SeeGE(board, move, 0) {
		t.Fatalf("expected see_ge(Nd3xe5, 0) = false, the knight is lost after ...Nxe5 Rxe5 ...Bxe5")
	}
}
