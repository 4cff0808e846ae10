// Package hash fingerprints snapshot content.
//
// Themereset hashes a widget snapshot when it is loaded and again right
// before the reset result is written back. A mismatch means the file changed
// underneath the reset (drift) and the write is refused. Journal entries
// record the fingerprint of the snapshot they were computed against.
package hash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Hasher provides an abstraction for content hashing.
type Hasher interface {
	// HashBytes returns the hex digest of data.
	HashBytes(data []byte) string

	// HashFile computes the digest of the file at the given path.
	HashFile(path string) (string, error)
}

// Blake3Hasher implements Hasher using BLAKE3 with a 256-bit digest.
type Blake3Hasher struct{}

// NewBlake3Hasher creates a new Blake3Hasher.
func NewBlake3Hasher() *Blake3Hasher {
	return &Blake3Hasher{}
}

// HashBytes returns the BLAKE3-256 digest of data, hex encoded.
func (h *Blake3Hasher) HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile streams the file at path through BLAKE3.
func (h *Blake3Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Short returns the first n characters of a digest, or the whole digest if
// it is shorter.
func Short(digest string, n int) string {
	if len(digest) <= n {
		return digest
	}
	return digest[:n]
}
