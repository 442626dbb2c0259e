package board

import "testing"

func TestFENAndValidate(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !b.Validate() {
		t.Fatalf("board invariants invalid after FEN parse")
	}
	if b.PieceAt(0) != WhiteRook {
		t.Errorf("expected a1 WhiteRook, got %v", b.PieceAt(0))
	}
	if b.PieceAt(4) != WhiteKing {
		t.Errorf("expected e1 WhiteKing, got %v", b.PieceAt(4))
	}
	if b.PieceAt(56) != BlackRook {
		t.Errorf("expected a8 BlackRook, got %v", b.PieceAt(56))
	}
	if b.PieceAt(60) != BlackKing {
		t.Errorf("expected e8 BlackKing, got %v", b.PieceAt(60))
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.ToFEN(); got != fen {
			t.Errorf("round trip mismatch: got %q want %q", got, fen)
		}
	}
}

func TestBoardMovePieceUpdates(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	startKey := b.ComputeZobrist()
	if startKey != b.ComputeZobrist() {
		t.Fatalf("zobrist mismatch on initial compute")
	}

	from := Square(1*8 + 4)
	to := Square(3*8 + 4)
	if b.PieceAt(from) != WhitePawn {
		t.Fatalf("expected WhitePawn at e2 before move")
	}
	if b.PieceAt(to) != NoPiece {
		t.Fatalf("expected empty e4 before move")
	}

	b.MovePiece(from, to)
	if !b.Validate() {
		t.Fatalf("board invariants invalid after MovePiece")
	}
	if b.PieceAt(from) != NoPiece || b.PieceAt(to) != WhitePawn {
		t.Fatalf("piece locations not updated correctly after MovePiece")
	}
}

func TestZobristStableAcrossRecompute(t *testing.T) {
	b, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	z1 := b.ComputeZobrist()
	z2 := b.ComputeZobrist()
	if z1 != z2 {
		t.Fatalf("ComputeZobrist unstable: %d != %d", z1, z2)
	}
	if z1 != b.Hash() {
		t.Fatalf("Hash() disagrees with ComputeZobrist(): %d != %d", b.Hash(), z1)
	}
}

func TestZobristDiffersBySideToMove(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
	w, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	bfen := "4k3/8/8/8/8/8/8/4K3 b - - 0 1"
	bk, err := ParseFEN(bfen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if w.ComputeZobrist() == bk.ComputeZobrist() {
		t.Fatalf("expected distinct zobrist keys for different side to move")
	}
}

func TestCastlingRightsAccessor(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	rights := b.CastlingRights()
	if rights&CastlingWhiteK == 0 || rights&CastlingWhiteQ == 0 || rights&CastlingBlackK == 0 || rights&CastlingBlackQ == 0 {
		t.Fatalf("expected all castling rights set at start, got %v", rights)
	}
}
