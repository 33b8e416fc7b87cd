package k12 //nolint:testpackage // testing internals

import (
	"bytes"
	"testing"
)

func TestAppendLengthEncode(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		value uint64
		want  []byte
	}{
		{value: 0, want: []byte{0}},
		{value: 1, want: []byte{1, 1}},
		{value: 255, want: []byte{255, 1}},
		{value: 256, want: []byte{1, 0, 2}},
		{value: 4096, want: []byte{16, 0, 2}},
		{value: 65536, want: []byte{1, 0, 0, 3}},
		{value: 12345, want: []byte{48, 57, 2}},
		{value: 18446744073709551615, want: []byte{255, 255, 255, 255, 255, 255, 255, 255, 8}},
	} {
		if got, want := appendLengthEncode(nil, test.value), test.want; !bytes.Equal(got, want) {
			t.Errorf("appendLengthEncode(%d) = %v, want = %v", test.value, got, want)
		}
	}
}

func TestTreeModeEntry(t *testing.T) {
	t.Parallel()

	h := New()
	_, _ = h.Write(make([]byte, ChunkSize))
	if h.treeMode {
		t.Error("entered tree mode at exactly one chunk of message data")
	}

	_, _ = h.Write([]byte{0})
	if !h.treeMode {
		t.Error("did not enter tree mode past one chunk of message data")
	}
}

func TestLeafCount(t *testing.T) {
	t.Parallel()

	// S = 2*ChunkSize + 2 message bytes + 1 suffix byte: three chunks, so
	// two chain values beyond the first chunk.
	h := New()
	_, _ = h.Write(make([]byte, 2*ChunkSize+2))
	h.finalize()

	if got, want := h.leaves, uint64(2); got != want {
		t.Errorf("leaves = %d, want = %d", got, want)
	}
}

func TestSequentialStaysBuffered(t *testing.T) {
	t.Parallel()

	// Message plus suffix fits one chunk: no tree, single sponge call.
	h := New()
	_, _ = h.Write(make([]byte, ChunkSize-1))
	h.finalize()

	if h.treeMode {
		t.Error("sequential-sized input entered tree mode")
	}
	if h.leaves != 0 {
		t.Errorf("leaves = %d, want = 0", h.leaves)
	}
}
