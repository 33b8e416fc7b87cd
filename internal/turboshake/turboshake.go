// Package turboshake implements TurboSHAKE128 as specified in RFC 9861.
//
// TurboSHAKE128 is an eXtendable-Output Function (XOF) built on the
// Keccak-p[1600,12] permutation with a rate of 168 bytes and a
// caller-chosen domain separation byte mixed into the padding.
package turboshake

import (
	"github.com/hopcrypt/k12/internal/keccak"
	"github.com/hopcrypt/k12/internal/mem"
)

// Rate is the TurboSHAKE128 rate in bytes (200 − 32).
const Rate = 168

// A Sponge is an incremental TurboSHAKE128 instance. Writes absorb data
// into the state and reads squeeze output from it. Once squeezing has
// begun, no further writes are permitted.
//
// Sponge instances are not concurrent-safe.
type Sponge struct {
	state     [200]byte
	pos       int
	ds        byte
	squeezing bool
}

// New returns a new Sponge with the given domain separation byte.
func New(ds byte) *Sponge {
	return &Sponge{ds: ds}
}

// Reset zeros the sponge and reinitializes it with the given domain
// separation byte.
func (s *Sponge) Reset(ds byte) {
	clear(s.state[:])
	s.pos = 0
	s.ds = ds
	s.squeezing = false
}

// Clone returns an independent copy of the sponge.
func (s *Sponge) Clone() *Sponge {
	c := *s
	return &c
}

// Write absorbs p into the sponge, permuting the state whenever a full
// rate block has been XORed in. It never returns an error.
func (s *Sponge) Write(p []byte) (int, error) {
	if s.squeezing {
		panic("turboshake: cannot absorb after squeezing has begun")
	}

	n := len(p)
	for len(p) > 0 {
		w := min(Rate-s.pos, len(p))
		mem.XORInPlace(s.state[s.pos:s.pos+w], p[:w])
		s.pos += w
		p = p[w:]
		if s.pos == Rate {
			keccak.P1600(&s.state)
			s.pos = 0
		}
	}
	return n, nil
}

// pad applies the multi-rate padding that ends absorption: the domain
// separation byte lands at the residual offset, and the pad10*1
// termination bit lands in the last rate byte. When the domain byte's
// high bit is set and the residual offset is the last rate byte, the two
// cannot share a block and an extra permutation separates them. The
// KangarooTwelve domain bytes never set the high bit, but the branch is
// required for block-aligned correctness with the full domain range.
func (s *Sponge) pad() {
	s.state[s.pos] ^= s.ds
	if s.ds&0x80 != 0 && s.pos == Rate-1 {
		keccak.P1600(&s.state)
	}
	s.state[Rate-1] ^= 0x80
	keccak.P1600(&s.state)
	s.pos = 0
	s.squeezing = true
}

// Read squeezes output from the sponge into p. The first call finalizes
// absorption by applying padding; subsequent calls continue squeezing,
// so sequential reads produce the same bytes as one large read. It never
// returns an error.
func (s *Sponge) Read(p []byte) (int, error) {
	if !s.squeezing {
		s.pad()
	}

	n := len(p)
	for len(p) > 0 {
		if s.pos == Rate {
			keccak.P1600(&s.state)
			s.pos = 0
		}
		w := copy(p, s.state[s.pos:Rate])
		s.pos += w
		p = p[w:]
	}
	return n, nil
}

// Sum computes TurboSHAKE128(msg, ds, n) and returns the result.
func Sum(msg []byte, ds byte, n int) []byte {
	var s Sponge
	s.ds = ds
	_, _ = s.Write(msg)

	out := make([]byte, n)
	_, _ = s.Read(out)
	return out
}
