package graph

import (
	"crypto/rand"
	"io"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/sudokuzkp/sudokuzkp/codec"
)

// EncryptedNode is a 32-byte commitment to a single node color.
type EncryptedNode [32]byte

// Size is the codec-encoded size of an EncryptedNode: 32 raw bytes.
func (EncryptedNode) Size() int { return 32 }

// Write encodes the digest as exactly 32 raw bytes, with no length prefix.
func (e EncryptedNode) Write(w *codec.Writer) {
	w.WriteDigest(e)
}

// ReadEncryptedNode decodes a digest written by Write.
func ReadEncryptedNode(r *codec.Reader) (EncryptedNode, error) {
	d, err := r.ReadDigest()
	return EncryptedNode(d), err
}

// Mapper is a per-round color relabeling: Mapper[0] is always 0 (the empty
// color is fixed), and Mapper[1..10] is a permutation of {1,...,9}.
//
// Applying a fresh, uniformly random Mapper to a graph each round is what
// lets an honest prover answer unboundedly many challenges against the same
// underlying coloring without an opened edge ever revealing the same pair
// of absolute colors twice (spec.md §8 property 9).
type Mapper [10]uint8

// NewMapper draws a fresh cryptographically random Mapper using a
// Fisher-Yates shuffle of {1,...,9} seeded from crypto/rand.
//
// crypto/rand, not a pack library, is used here deliberately: none of the
// third-party dependencies pulled into this module provide a
// cryptographically secure shuffle/permutation primitive, and spec.md §4.3
// requires the mapper be drawn from "a cryptographically-adequate source"
// (predictability of the mapper leaks the relabeling across rounds).
func NewMapper() (Mapper, error) {
	var m Mapper
	for v := 1; v <= 9; v++ {
		m[v] = uint8(v)
	}
	for i := 9; i > 1; i-- {
		j, err := randIntn(i)
		if err != nil {
			return Mapper{}, err
		}
		m[i], m[j+1] = m[j+1], m[i]
	}
	return m, nil
}

func randIntn(n int) (int, error) {
	// Rejection sampling over a uniformly random byte to avoid modulo bias,
	// adequate since n <= 9 here.
	max := 256 - (256 % n)
	for {
		var b [1]byte
		if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
			return 0, err
		}
		if int(b[0]) < max {
			return int(b[0]) % n, nil
		}
	}
}

// Apply relabels color under the mapper. Color 0 (empty) is always fixed.
func (m Mapper) Apply(color uint8) uint8 {
	return m[color]
}

// Keys holds one freshly sampled 64-bit key per node for a single
// sub-round.
type Keys [NumNodes]uint64

// Get returns the keys for both endpoints of e.
func (k Keys) Get(e Edge) (uint64, uint64) {
	return k[e.A], k[e.B]
}

// Hash computes the commitment SHA256(LE8(colorValue XOR key)) per
// spec.md §4.3.
//
// The hash implementation is github.com/minio/sha256-simd, a drop-in
// replacement for crypto/sha256 (same hash.Hash-shaped API) that uses
// hardware acceleration where available; it is already a real indirect
// dependency of the retrieved pack (via go-ethereum in stackdump-tens-city)
// so this substitutes rather than introduces a new dependency family.
func Hash(colorValue uint8, key uint64) EncryptedNode {
	var buf [8]byte
	v := uint64(colorValue) ^ key
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	return EncryptedNode(sha256simd.Sum256(buf[:]))
}

// Commit applies mapper to a copy of g's nodes and hashes each relabeled
// color together with the corresponding entry of keys, returning the
// per-node commitments alongside the relabeled colors (needed later to
// answer an edge-opening). It draws no randomness itself: key derivation
// is the protocol engine's concern (see protocol.deriveKeys), since
// spec.md §9's redesign flags per-round secret state as something that
// should flow through an explicit session value rather than be drawn
// ad hoc wherever a commitment happens to be computed.
//
// The straightforward fill-then-freeze pattern is used here: every element
// of commitments is written exactly once, in order. spec.md §9 flags a Rust
// iteration of this system that zipped encrypted-node storage with an empty
// pre-allocated vector (producing zero writes); that bug has no Go analogue
// to reproduce since there is no pre-sized-but-unconnected allocation step
// here.
func Commit(g *Graph[uint8], mapper Mapper, keys Keys) (relabeled [NumNodes]uint8, commitments [NumNodes]EncryptedNode) {
	for i := 0; i < NumNodes; i++ {
		color := mapper.Apply(g.At(i))
		relabeled[i] = color
		commitments[i] = Hash(color, keys[i])
	}
	return
}
