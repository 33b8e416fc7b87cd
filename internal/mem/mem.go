// Package mem provides byte-slice helpers shared by the sponge code.
package mem

import "crypto/subtle"

// XORInPlace XORs src into dst. Uses subtle.XORBytes for slices larger
// than 16 bytes (which benefits from SIMD) and a scalar loop for small
// slices.
func XORInPlace(dst, src []byte) {
	if len(src) > 16 {
		subtle.XORBytes(dst, dst[:len(src)], src)
	} else {
		for i := range src {
			dst[i] ^= src[i]
		}
	}
}
