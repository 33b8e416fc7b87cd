// Package keccak implements the Keccak-p[1600,12] permutation used by
// TurboSHAKE and KangarooTwelve (RFC 9861).
//
// The permutation operates on a 1600-bit state organized as 25 64-bit
// lanes, each stored little-endian. Keccak-p[1600,12] applies the last
// twelve rounds of Keccak-f[1600].
package keccak

import (
	"encoding/binary"
	"math/bits"
)

// rc holds the iota round constants for rounds 12 through 23 of
// Keccak-f[1600], the rounds applied by Keccak-p[1600,12].
var rc = [12]uint64{
	0x000000008000808B,
	0x800000000000008B,
	0x8000000000008089,
	0x8000000000008003,
	0x8000000000008002,
	0x8000000000000080,
	0x000000000000800A,
	0x800000008000000A,
	0x8000000080008081,
	0x8000000000008080,
	0x0000000080000001,
	0x8000000080008008,
}

// rotc and piln drive the combined rho and pi steps.
var (
	rotc = [24]int{
		1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
		27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
	}
	piln = [24]int{
		10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
		15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
	}
)

// P1600 applies the Keccak-p[1600, 12] permutation to the state.
func P1600(state *[200]byte) {
	var lanes [25]uint64
	for i := range lanes {
		lanes[i] = binary.LittleEndian.Uint64(state[8*i:])
	}

	permute(&lanes)

	for i, lane := range lanes {
		binary.LittleEndian.PutUint64(state[8*i:], lane)
	}
}

func permute(st *[25]uint64) {
	var bc [5]uint64
	for r := range rc {
		// theta
		for i := range bc {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := range bc {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				st[j+i] ^= t
			}
		}

		// rho and pi
		t := st[1]
		for i := range piln {
			j := piln[i]
			st[j], t = bits.RotateLeft64(t, rotc[i]), st[j]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			for i := range bc {
				bc[i] = st[j+i]
			}
			for i := range bc {
				st[j+i] = bc[i] ^ (^bc[(i+1)%5] & bc[(i+2)%5])
			}
		}

		// iota
		st[0] ^= rc[r]
	}
}
