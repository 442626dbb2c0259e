package board

import "math/bits"

// bb returns a bitboard with only the given square's bit set.
func bb(sq Square) uint64 { return uint64(1) << uint(sq) }

// popLSB removes and returns the index of the least significant set bit.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// msb returns the index of the most significant set bit of a nonzero mask.
func msb(mask uint64) int { return 63 - bits.LeadingZeros64(mask) }

func popCount(mask uint64) int { return bits.OnesCount64(mask) }
