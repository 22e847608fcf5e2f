package hasher

import (
	"hash/crc64"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// FNV1a64 is the FNV-1a 64-bit hash: offset basis 14695981039346656037,
// prime 1099511628211, XOR-then-multiply per byte. It wraps the standard
// library's hash/fnv, which already implements this to the letter.
type FNV1a64 struct{}

// Sum64 hashes data with FNV-1a 64-bit.
func (FNV1a64) Sum64(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data) //nolint:errcheck // hash.Hash.Write never returns an error
	return h.Sum64()
}

// CRC64ISO is CRC-64 with the ISO polynomial (0xD800000000000000),
// initial value and final XOR both all-ones, byte-at-a-time table
// lookup. hash/crc64's Checksum already complements the register on
// entry and on exit, which is exactly this all-ones init and final XOR.
type CRC64ISO struct{}

var crc64ISOTable = crc64.MakeTable(crc64.ISO)

// Sum64 hashes data with CRC-64 ISO.
func (CRC64ISO) Sum64(data []byte) uint64 {
	return crc64.Checksum(data, crc64ISOTable)
}

// XXHash64 is a third, faster-dispersion hasher beyond the two the
// reference design names, backed by github.com/cespare/xxhash/v2. It
// trades the simplicity of FNV-1a/CRC-64 for better avalanche behavior
// on short keys; offered for callers who care, never used internally.
type XXHash64 struct{}

// Sum64 hashes data with 64-bit xxHash.
func (XXHash64) Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
