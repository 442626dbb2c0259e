package board

import "testing"

func TestMakeUnmakeNormalMove(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	startZ := b.ComputeZobrist()

	from := Square(1*8 + 4) // e2
	to := Square(3*8 + 4)   // e4
	m := NewMove(from, to, WhitePawn, NoPiece, NoPiece, FlagNone)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for normal move")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after MakeMove")
	}

	b.UnmakeMove(m, st)
	if !b.Validate() {
		t.Fatalf("board invalid after UnmakeMove")
	}
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after unmake: got %q want %q", b.ToFEN(), startFEN)
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after unmake")
	}
}

func TestMakeUnmakeCapture(t *testing.T) {
	b, err := ParseFEN("8/7r/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(0)
	to := Square(6*8 + 7)
	m := NewMove(from, to, WhiteRook, BlackRook, NoPiece, FlagNone)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for capture move")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after capture MakeMove")
	}
	b.UnmakeMove(m, st)
	if !b.Validate() {
		t.Fatalf("board invalid after capture UnmakeMove")
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after capture unmake")
	}
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	fen := "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(4*8 + 4) // e5
	to := Square(5*8 + 3)   // d6
	m := NewMove(from, to, WhitePawn, BlackPawn, NoPiece, FlagEnPassant)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for en passant")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after en passant MakeMove")
	}
	if b.PieceAt(Square(4*8+3)) != NoPiece {
		t.Fatalf("expected captured pawn removed from d5")
	}
	b.UnmakeMove(m, st)
	if !b.Validate() {
		t.Fatalf("board invalid after en passant UnmakeMove")
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after ep unmake")
	}
}

func TestMakeUnmakeCastling(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(4) // e1
	to := Square(6)   // g1
	m := NewMove(from, to, WhiteKing, NoPiece, NoPiece, FlagCastle)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for castling")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after castling MakeMove")
	}
	if got := b.PieceAt(5); got != WhiteRook {
		t.Fatalf("expected rook on f1 after castling, got %v", got)
	}
	b.UnmakeMove(m, st)
	if !b.Validate() {
		t.Fatalf("board invalid after castling UnmakeMove")
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after castling unmake")
	}
}

func TestMakeMovePromotion(t *testing.T) {
	b, err := ParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	from := Square(6 * 8) // a7
	to := Square(7 * 8)   // a8
	m := NewMove(from, to, WhitePawn, NoPiece, WhiteQueen, FlagNone)
	ok, st := b.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove failed for promotion")
	}
	if got := b.PieceAt(to); got != WhiteQueen {
		t.Fatalf("expected promoted queen on a8, got %v", got)
	}
	b.UnmakeMove(m, st)
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after promotion unmake")
	}
	if got := b.PieceAt(from); got != WhitePawn {
		t.Fatalf("expected pawn restored on a7, got %v", got)
	}
}

func TestMakeUnmakeNullMove(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	startZ := b.ComputeZobrist()
	startFEN := b.ToFEN()
	st := b.MakeNullMove()
	if b.SideToMove() != Black {
		t.Fatalf("expected side to move flipped after null move")
	}
	b.UnmakeNullMove(st)
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after null move unmake")
	}
	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after null move unmake")
	}
}

func TestIllegalMoveLeavesKingInCheckRejected(t *testing.T) {
	// The white rook on e2 is pinned to the king on e1 by a black rook on e8;
	// moving it off the e-file would expose the king to check.
	b, err := ParseFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	from := Square(1 * 8 + 4) // e2
	to := Square(1 * 8 + 3)   // d2, sidesteps off the e-file
	m := NewMove(from, to, WhiteRook, NoPiece, NoPiece, FlagNone)
	ok, _ := b.MakeMove(m)
	if ok {
		t.Fatalf("expected pinned rook move off the e-file to be rejected")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after rejected move")
	}
}
