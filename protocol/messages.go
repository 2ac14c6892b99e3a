package protocol

import (
	"github.com/sudokuzkp/sudokuzkp/codec"
	"github.com/sudokuzkp/sudokuzkp/graph"
)

// CommitmentSet is the per-sub-round array of 90 node commitments, encoded
// as a fixed array (§4.1): 90·32 = 2880 bytes, no length prefix.
type CommitmentSet [graph.NumNodes]graph.EncryptedNode

// Size is the encoded byte length of a CommitmentSet.
func (c CommitmentSet) Size() int { return graph.NumNodes * 32 }

// Write encodes c as 90 consecutive digests.
func (c CommitmentSet) Write(w *codec.Writer) {
	for _, n := range c {
		n.Write(w)
	}
}

// ReadCommitmentSet decodes a CommitmentSet written by Write.
func ReadCommitmentSet(r *codec.Reader) (CommitmentSet, error) {
	var c CommitmentSet
	for i := range c {
		n, err := graph.ReadEncryptedNode(r)
		if err != nil {
			return CommitmentSet{}, err
		}
		c[i] = n
	}
	return c, nil
}

// Opening is the prover's response to a single challenged edge: the two
// endpoint colors under that sub-round's mapper, and their two keys.
// Encoded size is 2 + 16 = 18 bytes per §6.
type Opening struct {
	Colors [2]uint8
	Keys   [2]uint64
}

// Size is the encoded byte length of an Opening.
func (Opening) Size() int { return 18 }

// Write encodes o as (u8, u8, u64, u64).
func (o Opening) Write(w *codec.Writer) {
	w.WriteUint8(o.Colors[0])
	w.WriteUint8(o.Colors[1])
	w.WriteUint64(o.Keys[0])
	w.WriteUint64(o.Keys[1])
}

// ReadOpening decodes an Opening written by Write.
func ReadOpening(r *codec.Reader) (Opening, error) {
	var o Opening
	var err error
	if o.Colors[0], err = r.ReadUint8(); err != nil {
		return Opening{}, err
	}
	if o.Colors[1], err = r.ReadUint8(); err != nil {
		return Opening{}, err
	}
	if o.Keys[0], err = r.ReadUint64(); err != nil {
		return Opening{}, err
	}
	if o.Keys[1], err = r.ReadUint64(); err != nil {
		return Opening{}, err
	}
	return o, nil
}

// CommitmentBatch is the `GET commitments` response body: a variable
// sequence of N CommitmentSet values (§6).
type CommitmentBatch []CommitmentSet

// EncodeCommitmentBatch serializes b per the variable-sequence rule.
func EncodeCommitmentBatch(b CommitmentBatch) []byte {
	w := codec.NewWriter(codec.SizeSeq[CommitmentSet](b))
	codec.WriteSeq[CommitmentSet](w, b)
	return w.Bytes()
}

// DecodeCommitmentBatch parses bytes produced by EncodeCommitmentBatch.
func DecodeCommitmentBatch(data []byte) (CommitmentBatch, error) {
	return codec.FromBytes(data, func(r *codec.Reader) (CommitmentBatch, error) {
		return codec.ReadSeq(r, ReadCommitmentSet)
	})
}

// ChallengeBatch is the `POST challenges` request body: a variable sequence
// of N edges, one per sub-round.
type ChallengeBatch []graph.Edge

// EncodeChallengeBatch serializes b per the variable-sequence rule.
func EncodeChallengeBatch(b ChallengeBatch) []byte {
	w := codec.NewWriter(codec.SizeSeq[graph.Edge](b))
	codec.WriteSeq[graph.Edge](w, b)
	return w.Bytes()
}

// DecodeChallengeBatch parses bytes produced by EncodeChallengeBatch.
func DecodeChallengeBatch(data []byte) (ChallengeBatch, error) {
	return codec.FromBytes(data, func(r *codec.Reader) (ChallengeBatch, error) {
		return codec.ReadSeq(r, graph.ReadEdge)
	})
}

// OpeningBatch is the `POST challenges` response body: a variable sequence
// of N openings, one per challenged edge.
type OpeningBatch []Opening

// EncodeOpeningBatch serializes b per the variable-sequence rule.
func EncodeOpeningBatch(b OpeningBatch) []byte {
	w := codec.NewWriter(codec.SizeSeq[Opening](b))
	codec.WriteSeq[Opening](w, b)
	return w.Bytes()
}

// DecodeOpeningBatch parses bytes produced by EncodeOpeningBatch.
func DecodeOpeningBatch(data []byte) (OpeningBatch, error) {
	return codec.FromBytes(data, func(r *codec.Reader) (OpeningBatch, error) {
		return codec.ReadSeq(r, ReadOpening)
	})
}
