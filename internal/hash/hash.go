package hash

import (
	"fmt"
	"hash/fnv"
)

// Payload returns the FNV-1a 64-bit hash of data as a hex string.
// It fingerprints webhook bodies so log lines of one delivery can be correlated.
func Payload(data []byte) string {
	h := fnv.New64a()
	h.Write(data) // nolint:errcheck
	return fmt.Sprintf("%016x", h.Sum64())
}
