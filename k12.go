// Package k12 implements KangarooTwelve (KT128), the tree-hash
// eXtendable-Output Function (XOF) specified in RFC 9861.
//
// KangarooTwelve is built on TurboSHAKE128, a sponge over the
// Keccak-p[1600,12] permutation. Inputs of at most one 8192-byte chunk are
// hashed sequentially. Larger inputs hop: every chunk after the first is
// hashed to an independent 32-byte chain value, and the chain values are
// folded into a final node together with the first chunk. Because the
// chain values have no data dependency on each other, they are computed
// concurrently across completed chunks.
//
// A Hasher accepts an optional customization string, a second input that
// domain-separates unrelated uses of the function without length-extension
// ambiguity.
//
// Hasher instances are not concurrent-safe.
package k12

import (
	"hash"
	"io"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hopcrypt/k12/internal/turboshake"
)

var (
	_ hash.Hash = (*Hasher)(nil)
	_ io.Reader = (*Hasher)(nil)
)

const (
	// ChunkSize is the KangarooTwelve chunk size in bytes.
	ChunkSize = 8192

	// Size is the default output size in bytes, matching the 128-bit
	// security level.
	Size = 32

	cvSize = 32 // Chain value size.

	leafDS       = 0x0B // Leaf chain-value derivation.
	finalDS      = 0x06 // Final node of a multi-chunk tree.
	sequentialDS = 0x07 // Single-node (sequential) hashing.
)

// treeMarker separates the first chunk from the chain values in the final
// node and pins the tree parameters (single level, fixed chunk size,
// 256-bit chain values).
var treeMarker = [8]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// A Hasher is an incremental KangarooTwelve instance. Message bytes are
// absorbed with Write or Chain; Finalize (or the first Read) ends
// absorption, after which output of any length can be squeezed. A
// finalized Hasher no longer accepts writes.
type Hasher struct {
	suffix    []byte             // C ‖ lengthEncode(|C|), fixed at construction
	buf       []byte             // message bytes not yet committed to a chunk
	final     *turboshake.Sponge // final-node sponge, nil until tree mode or finalization
	leaves    uint64             // chain values folded into the final node so far
	treeMode  bool               // set once the first chunk has been flushed
	finalized bool               // set once squeezing has begun
}

// New returns a new Hasher with an empty customization string.
func New() *Hasher {
	return NewCustom(nil)
}

// NewCustom returns a new Hasher with the given customization string.
func NewCustom(c []byte) *Hasher {
	suffix := make([]byte, 0, len(c)+9)
	suffix = append(suffix, c...)
	suffix = appendLengthEncode(suffix, uint64(len(c)))
	return &Hasher{suffix: suffix}
}

// Sum computes KangarooTwelve over msg with the given customization
// string and returns n bytes of output.
func Sum(msg, customization []byte, n int) []byte {
	h := NewCustom(customization)
	_, _ = h.Write(msg)
	return h.Finalize(n)
}

// Write absorbs message bytes. It panics if the Hasher has been
// finalized. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalized {
		panic("k12: cannot write after finalization")
	}

	h.buf = append(h.buf, p...)
	if !h.treeMode && len(h.buf) > ChunkSize {
		h.enterTreeMode()
	}
	if h.treeMode {
		h.flushChunks()
	}
	return len(p), nil
}

// Chain absorbs message bytes and returns the Hasher for fluent use.
func (h *Hasher) Chain(p []byte) *Hasher {
	_, _ = h.Write(p)
	return h
}

// Finalize ends absorption, appending the customization suffix and
// assembling the final node, and returns exactly n bytes of output. More
// output can be drawn afterward with Read; further writes panic.
func (h *Hasher) Finalize(n int) []byte {
	out := make([]byte, n)
	_, _ = h.Read(out)
	return out
}

// Read squeezes output from the XOF. The first call finalizes the Hasher.
// Sequential reads produce the same byte stream as one large read. It
// never returns an error.
func (h *Hasher) Read(p []byte) (int, error) {
	h.finalize()
	return h.final.Read(p)
}

// Sum appends the 32-byte default-length hash of the current state to b
// without finalizing the Hasher. It operates on a clone, so writes may
// continue afterward.
//
// If squeezing has already begun, the clone resumes the output stream
// where Read left off, so Sum appends the next 32 bytes of the stream
// rather than its first 32 bytes.
func (h *Hasher) Sum(b []byte) []byte {
	clone := &Hasher{
		suffix:    h.suffix,
		buf:       slices.Clone(h.buf),
		leaves:    h.leaves,
		treeMode:  h.treeMode,
		finalized: h.finalized,
	}
	if h.final != nil {
		clone.final = h.final.Clone()
	}

	out := make([]byte, Size)
	_, _ = clone.Read(out)
	return append(b, out...)
}

// Reset restores the Hasher to its initial state, retaining the
// customization string.
func (h *Hasher) Reset() {
	h.buf = h.buf[:0]
	h.final = nil
	h.leaves = 0
	h.treeMode = false
	h.finalized = false
}

// Size returns the default output size in bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the KangarooTwelve chunk size.
func (h *Hasher) BlockSize() int { return ChunkSize }

// enterTreeMode commits the first chunk and the tree marker to the
// final-node sponge and leaves the remainder buffered.
func (h *Hasher) enterTreeMode() {
	h.final = turboshake.New(finalDS)
	_, _ = h.final.Write(h.buf[:ChunkSize])
	_, _ = h.final.Write(treeMarker[:])
	rest := copy(h.buf, h.buf[ChunkSize:])
	h.buf = h.buf[:rest]
	h.treeMode = true
}

// flushChunks folds the chain values of all complete buffered chunks into
// the final node. Safe during writes: the customization suffix appended at
// finalization guarantees at least one byte always follows a full chunk of
// message data, so a full chunk here is never the last chunk.
func (h *Hasher) flushChunks() {
	ready := len(h.buf) / ChunkSize
	if ready == 0 {
		return
	}
	h.foldChainValues(h.buf[:ready*ChunkSize])
	rest := copy(h.buf, h.buf[ready*ChunkSize:])
	h.buf = h.buf[:rest]
}

// foldChainValues computes the 32-byte chain value of each chunk of data
// (the last may be partial) and appends them to the final node in chunk
// order. Chain values are independent, so they are computed concurrently
// and collected into an index-addressed buffer; the fold order never
// depends on completion order.
func (h *Hasher) foldChainValues(data []byte) {
	count := (len(data) + ChunkSize - 1) / ChunkSize
	cvs := make([]byte, count*cvSize)

	if count == 1 {
		cv := turboshake.Sum(data, leafDS, cvSize)
		copy(cvs, cv)
	} else {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := 0; i < count; i++ {
			i := i
			g.Go(func() error {
				lo := i * ChunkSize
				hi := min(lo+ChunkSize, len(data))
				cv := turboshake.Sum(data[lo:hi], leafDS, cvSize)
				copy(cvs[i*cvSize:], cv)
				return nil
			})
		}
		_ = g.Wait()
	}

	_, _ = h.final.Write(cvs)
	h.leaves += uint64(count)
}

// finalize appends the customization suffix, resolves sequential vs. tree
// mode, and closes the final node. Idempotent.
func (h *Hasher) finalize() {
	if h.finalized {
		return
	}
	h.finalized = true

	h.buf = append(h.buf, h.suffix...)

	if !h.treeMode {
		if len(h.buf) <= ChunkSize {
			// Sequential: a single TurboSHAKE128 call over the whole input.
			h.final = turboshake.New(sequentialDS)
			_, _ = h.final.Write(h.buf)
			return
		}
		h.enterTreeMode()
	}

	// The remaining buffered bytes form the last chunks; the suffix makes
	// this at least one byte.
	h.foldChainValues(h.buf)
	h.buf = h.buf[:0]

	_, _ = h.final.Write(appendLengthEncode(nil, h.leaves))
	_, _ = h.final.Write([]byte{0xFF, 0xFF})
}

// appendLengthEncode appends the KangarooTwelve length encoding of x to
// dst: the shortest big-endian representation of x followed by a byte
// holding the representation's length. Zero encodes as the single byte
// 0x00.
func appendLengthEncode(dst []byte, x uint64) []byte {
	n := 0
	for v := x; v > 0; v >>= 8 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(x>>(8*i)))
	}
	return append(dst, byte(n))
}
