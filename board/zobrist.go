package board

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [16][64]uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are reproducible across runs and across tests.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := 0; p < 16; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeZobrist recomputes the Zobrist hash for the board from scratch. Used
// at FEN-parse time and as the oracle Validate checks incremental updates
// against.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64

	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}

	if b.sideToMove == Black {
		key ^= zobristSide
	}

	key ^= zobristCastle[int(b.castlingRights)]

	if b.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	return key
}
