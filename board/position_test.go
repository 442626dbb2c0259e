package board

import "testing"

func findMove(t *testing.T, b *Board, from, to Square) (Move, bool) {
	t.Helper()
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to {
			return m, true
		}
	}
	return 0, false
}

func TestPushPopRoundTrip(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	startFEN := b.ToFEN()
	startZ := b.ComputeZobrist()

	var stack []MoveState
	var hist []uint64

	e2 := Square(1*8 + 4)
	e4 := Square(3*8 + 4)
	e7 := Square(6*8 + 4)
	e5 := Square(4*8 + 4)

	m1, ok := findMove(t, b, e2, e4)
	if !ok {
		t.Fatalf("e2e4 not found")
	}
	if !b.PushMove(m1, &stack, &hist) {
		t.Fatalf("PushMove e2e4 failed")
	}

	m2, ok := findMove(t, b, e7, e5)
	if !ok {
		t.Fatalf("e7e5 not found")
	}
	if !b.PushMove(m2, &stack, &hist) {
		t.Fatalf("PushMove e7e5 failed")
	}

	b.PopMove(&stack, &hist)
	b.PopMove(&stack, &hist)

	if b.ToFEN() != startFEN {
		t.Fatalf("FEN mismatch after pop: got %q want %q", b.ToFEN(), startFEN)
	}
	if b.ComputeZobrist() != startZ {
		t.Fatalf("zobrist mismatch after pop")
	}
	if len(stack) != 0 || len(hist) != 0 {
		t.Fatalf("stack/history not empty after pops")
	}
}

func TestThreefoldRepetitionKnightShuffle(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	var hist []uint64
	hist = append(hist, b.ComputeZobrist())

	play := func(from, to Square) {
		m, ok := findMove(t, b, from, to)
		if !ok {
			t.Fatalf("move %v->%v not found", from, to)
		}
		ok2, _ := b.MakeMove(m)
		if !ok2 {
			t.Fatalf("move %v->%v illegal unexpectedly", from, to)
		}
		hist = append(hist, b.ComputeZobrist())
	}

	g1 := Square(6)
	f3 := Square(2*8 + 5)
	g8 := Square(7*8 + 6)
	f6 := Square(5*8 + 5)

	play(g1, f3)
	play(g8, f6)
	play(f3, g1)
	play(f6, g8)

	if b.IsDrawByRepetition(hist) {
		t.Fatalf("should not be threefold yet after one cycle")
	}

	play(g1, f3)
	play(g8, f6)
	play(f3, g1)
	play(f6, g8)

	if !b.IsDrawByRepetition(hist) {
		t.Fatalf("expected threefold repetition after two cycles")
	}
}

func TestFiftyMoveRuleWithPushes(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	var stack []MoveState
	var hist []uint64

	g1 := Square(6)
	f3 := Square(2*8 + 5)
	g8 := Square(7*8 + 6)
	f6 := Square(5*8 + 5)

	for i := 0; i < 25; i++ {
		for _, leg := range [][2]Square{{g1, f3}, {g8, f6}, {f3, g1}, {f6, g8}} {
			m, ok := findMove(t, b, leg[0], leg[1])
			if !ok {
				t.Fatalf("move %v->%v not found at i=%d", leg[0], leg[1], i)
			}
			if !b.PushMove(m, &stack, &hist) {
				t.Fatalf("push %v->%v failed at i=%d", leg[0], leg[1], i)
			}
		}
	}

	if !b.IsDrawBy50() {
		t.Fatalf("expected 50-move rule draw after 100 halfmoves, got halfmoveClock=%d", b.HalfmoveClock())
	}
}

func TestCheckmateFoolsMate(t *testing.T) {
	fen := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if !b.InCheck(White) {
		t.Fatalf("expected White to be in check")
	}
	if b.HasLegalMoves() {
		t.Fatalf("expected no legal moves for White in mate")
	}
	if !b.InCheckmate() {
		t.Fatalf("expected checkmate for White")
	}
	if b.InStalemate() {
		t.Fatalf("not stalemate in mate position")
	}
}

func TestStalemateBasic(t *testing.T) {
	fen := "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if b.InCheck(Black) {
		t.Fatalf("expected Black not in check")
	}
	if b.HasLegalMoves() {
		t.Fatalf("expected no legal moves for Black in stalemate")
	}
	if !b.InStalemate() {
		t.Fatalf("expected stalemate for Black")
	}
}

func TestMateInOneMakeAndDetect(t *testing.T) {
	fen := "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}

	from := Square(5*8 + 6) // g6
	to := Square(6*8 + 6)   // g7
	var move Move
	found := false
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && m.CapturedPiece() == BlackPawn {
			move = m
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected to find Qxg7# move in legal moves")
	}

	ok, st := b.MakeMove(move)
	if !ok {
		t.Fatalf("MakeMove for Qxg7 should be legal")
	}
	defer b.UnmakeMove(move, st)

	if !b.InCheckmate() {
		t.Fatalf("expected checkmate after Qxg7#")
	}
	if b.InStalemate() {
		t.Fatalf("not stalemate after mate")
	}
}

func TestPerftDivideInitialDepth2(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	div := PerftDivide(b, 2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for _, v := range div {
		sum += v
		if v != 20 {
			t.Fatalf("expected all child counts to be 20, got %d", v)
		}
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}
