package board

import "testing"

func TestMoveGenerationInitial(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN failed for initial position: %v", err)
	}
	moves := b.GenerateMoves()
	if len(moves) != 20 {
		t.Errorf("Initial position: expected 20 moves, got %d", len(moves))
	}
}

func TestGenerateCapturesOnlyReturnsCaptures(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	caps := b.GenerateCaptures()
	if len(caps) == 0 {
		t.Fatalf("expected some captures in Kiwipete")
	}
	for _, m := range caps {
		if !IsCapture(m, b) && m.Flags() != FlagEnPassant {
			t.Errorf("GenerateCaptures returned non-capture move %s", m.String())
		}
	}
}

func TestGenerateQuietsExcludesCaptures(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	quiets := b.GenerateQuiets()
	for _, m := range quiets {
		if m.CapturedPiece() != NoPiece {
			t.Errorf("GenerateQuiets returned a capture move %s", m.String())
		}
	}
	all := b.GenerateMoves()
	caps := b.GenerateCaptures()
	if len(quiets)+len(caps) != len(all) {
		t.Errorf("captures(%d) + quiets(%d) != all(%d)", len(caps), len(quiets), len(all))
	}
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	// White kingside castle would pass the king through f1, attacked by a
	// black rook on f8 with an otherwise open file.
	fen := "4kr2/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range b.GenerateMoves() {
		if m.Flags() == FlagCastle {
			t.Fatalf("did not expect legal castle, f1 is attacked by the rook on f8")
		}
	}
}

func TestCastlingRejectedWhileInCheck(t *testing.T) {
	fen := "4k3/8/8/8/8/8/4r3/4K2R w K - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range b.GenerateMoves() {
		if m.Flags() == FlagCastle {
			t.Fatalf("did not expect legal castle while king is in check")
		}
	}
}

func TestPinnedPieceCannotMoveOffPinLine(t *testing.T) {
	// White bishop on d2 is pinned to the king on e1 by a black bishop on b4.
	fen := "4k3/8/8/8/1b6/8/3B4/4K3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	d2 := Square(1*8 + 3)
	for _, m := range b.GenerateMoves() {
		if m.From() == d2 && m.MovedPiece() == WhiteBishop {
			// Legal destinations must stay on the b4-e1 diagonal.
			switch m.To() {
			case Square(2*8 + 2), Square(3*8 + 1): // c3, b4
			default:
				t.Errorf("pinned bishop moved off pin line to %s", m.To().String())
			}
		}
	}
}

func TestCheckEvasionRestrictsToBlockOrCaptureOrKingMove(t *testing.T) {
	// Black rook checks the white king from e8 along the e-file. White has
	// no piece that could block or capture, so every legal evasion must be a
	// king move off the file.
	fen := "4r3/8/8/8/8/8/8/4K3 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !b.InCheck(White) {
		t.Fatalf("expected white in check")
	}
	moves := b.GenerateMoves()
	if len(moves) == 0 {
		t.Fatalf("expected at least one legal evasion")
	}
	for _, m := range moves {
		if m.MovedPiece() != WhiteKing {
			t.Errorf("only the king can move here, got mover %v", m.MovedPiece())
		}
	}
}
