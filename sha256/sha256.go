package sha256

import (
	"hash"

	simd "github.com/minio/sha256-simd"
)

const (
	// Size of a digest in bytes.
	Size = simd.Size
	// BlockSize of the hash in bytes.
	BlockSize = simd.BlockSize
)

// New returns a new hash.Hash computing SHA-256.
func New() hash.Hash { return simd.New() }

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte { return simd.Sum256(data) }
