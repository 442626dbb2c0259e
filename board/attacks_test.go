package board

import "testing"

func emptyTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := ParseFEN("8/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN empty: %v", err)
	}
	return b
}

func TestIsSquareAttackedRookFiles(t *testing.T) {
	b := emptyTestBoard(t)
	e1 := Square(0*8 + 4)
	e8 := Square(7*8 + 4)
	b.SetPiece(e1, WhiteKing)
	b.SetPiece(e8, BlackRook)
	if !b.InCheck(White) {
		t.Fatalf("expected White in check from rook on file")
	}
	if !b.IsSquareAttacked(e1, Black) {
		t.Fatalf("expected e1 attacked by Black")
	}
	e3 := Square(2*8 + 4)
	b.SetPiece(e3, WhitePawn)
	if b.IsSquareAttacked(e1, Black) {
		t.Fatalf("did not expect e1 attacked after blocker added")
	}
}

func TestIsSquareAttackedBishopDiagonals(t *testing.T) {
	b := emptyTestBoard(t)
	e1 := Square(0*8 + 4)
	b4 := Square(3*8 + 1)
	b.SetPiece(e1, WhiteKing)
	b.SetPiece(b4, BlackBishop)
	if !b.IsSquareAttacked(e1, Black) || !b.InCheck(White) {
		t.Fatalf("expected e1 attacked by bishop along diagonal")
	}
	d2 := Square(1*8 + 3)
	b.SetPiece(d2, WhitePawn)
	if b.IsSquareAttacked(e1, Black) {
		t.Fatalf("did not expect e1 attacked after diagonal blocker")
	}
}

func TestIsSquareAttackedPawnsKnightsKings(t *testing.T) {
	b := emptyTestBoard(t)
	e1 := Square(0*8 + 4)
	e4 := Square(3*8 + 4)
	d5 := Square(4*8 + 3)
	f3 := Square(2*8 + 5)
	d2 := Square(1*8 + 3)

	b.SetPiece(e1, WhiteKing)
	b.SetPiece(e4, WhitePawn)
	b.SetPiece(d5, BlackPawn)
	if !b.IsSquareAttacked(e4, Black) {
		t.Fatalf("expected e4 attacked by black pawn from d5")
	}
	b.SetPiece(f3, BlackKnight)
	if !b.IsSquareAttacked(e1, Black) {
		t.Fatalf("expected e1 attacked by black knight from f3")
	}
	b.SetPiece(d2, BlackKing)
	if !b.IsSquareAttacked(e1, Black) {
		t.Fatalf("expected e1 attacked by adjacent black king")
	}
}

func TestDoubleCheckOnlyAllowsKingMoves(t *testing.T) {
	// Black queen on h4 and knight on d3 both check the white king on e1
	// (queen along the diagonal, knight a knight-hop away); only the king
	// can move in a double check.
	fen := "4k3/8/8/8/7q/3n4/8/4K3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := b.GenerateMoves()
	for _, m := range moves {
		if m.MovedPiece() != WhiteKing {
			t.Errorf("expected only king moves under double check, got %v", m.MovedPiece())
		}
	}
}

func TestGivesCheckDetectsDiscoveredCheck(t *testing.T) {
	// Moving the white knight off e2 discovers a check from the rook on e1
	// against the black king on e8.
	fen := "4k3/8/8/8/8/8/4N3/4R3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	from := Square(1*8 + 4) // e2
	to := Square(2*8 + 5)   // f3
	m := NewMove(from, to, WhiteKnight, NoPiece, NoPiece, FlagNone)
	if !b.GivesCheck(m) {
		t.Fatalf("expected discovered check when knight vacates the e-file")
	}
}
