package arith

import (
	"encoding/binary"

	"github.com/ulikunitz/vp8/xlog"
)

// The methods in this file read speculatively from a copy of the
// decoder state. For all but the last few bits of a partition the data
// doesn't run out, so instead of checking for the end of the stream on
// every refill we pretend that the data is followed by an infinite
// number of zero words. The index is still increased, so commit can
// detect afterwards whether the copy consumed such a word. In that case
// the copy is discarded and the read repeated by the checked path.

// fill loads the next word into the value. Words behind data are zero.
func (s *state) fill(data []byte) {
	var w uint32
	if i := 4 * s.index; i+4 <= len(data) {
		w = binary.BigEndian.Uint32(data[i : i+4])
	}
	s.index++
	s.value = s.value<<32 | uint64(w)
	s.count += 32
}

func (s *state) readBit(data []byte, p uint32) bool {
	if s.count < 0 {
		s.fill(data)
	}
	return s.decide(p)
}

func (s *state) readLiteral(data []byte, n uint8) uint8 {
	var v uint8
	for i := uint8(0); i < n; i++ {
		v = v<<1 | b2u(s.readBit(data, 128))
	}
	return v
}

func (s *state) readMagnitudeAndSign(data []byte, n uint8) int32 {
	m := int32(s.readLiteral(data, n))
	if s.readBit(data, 128) {
		return -m
	}
	return m
}

func (s *state) readOptionalSignedValue(data []byte, n uint8) int32 {
	if !s.readBit(data, 128) {
		return 0
	}
	return s.readMagnitudeAndSign(data, n)
}

func (s *state) readTree(data []byte, tree []TreeNode, i int) int8 {
	for {
		node := tree[i]
		b := node.Left
		if s.readBit(data, uint32(node.Prob)) {
			b = node.Right
		}
		if int(b) >= len(tree) {
			return LeafValue(b)
		}
		i = int(b)
	}
}

// commit replaces the decoder state with the speculative state s if s
// didn't read behind the words of the partition. It reports whether the
// state has been replaced. A decoder past the end never commits; this
// covers the zero value, whose state has never been refilled.
func (d *Decoder) commit(s *state) bool {
	if s.index > d.words || d.tail == tailEOF {
		return false
	}
	d.s = *s
	return true
}

// ReadBool reads a bit that is false with probability p/256.
func (d *Decoder) ReadBool(p uint8) Result[bool] {
	s := d.s
	b := s.readBit(d.data, uint32(p))
	if d.commit(&s) {
		return Result[bool]{b}
	}
	return Result[bool]{d.readBit(uint32(p))}
}

// ReadFlag reads a bit with even probability.
func (d *Decoder) ReadFlag() Result[bool] {
	s := d.s
	b := s.readBit(d.data, 128)
	if d.commit(&s) {
		return Result[bool]{b}
	}
	return Result[bool]{d.readBit(128)}
}

// ReadLiteral reads an unsigned value of n bits, most-significant bit
// first. Every bit has even probability. Only the last 8 bits are
// returned for n > 8.
func (d *Decoder) ReadLiteral(n uint8) Result[uint8] {
	s := d.s
	v := s.readLiteral(d.data, n)
	if d.commit(&s) {
		return Result[uint8]{v}
	}
	logFallback(d, "literal")
	return Result[uint8]{d.slowReadLiteral(n)}
}

// ReadMagnitudeAndSign reads an n-bit magnitude followed by a sign bit.
func (d *Decoder) ReadMagnitudeAndSign(n uint8) Result[int32] {
	s := d.s
	v := s.readMagnitudeAndSign(d.data, n)
	if d.commit(&s) {
		return Result[int32]{v}
	}
	logFallback(d, "magnitude and sign")
	return Result[int32]{d.slowReadMagnitudeAndSign(n)}
}

// ReadOptionalSignedValue reads a flag. If the flag is set an n-bit
// magnitude and a sign bit follow, otherwise the value is zero and
// exactly one bit has been consumed.
func (d *Decoder) ReadOptionalSignedValue(n uint8) Result[int32] {
	s := d.s
	v := s.readOptionalSignedValue(d.data, n)
	if d.commit(&s) {
		return Result[int32]{v}
	}
	logFallback(d, "optional signed value")
	return Result[int32]{d.slowReadOptionalSignedValue(n)}
}

// ReadTree walks the tree from its first node and returns the value of
// the leaf reached.
func (d *Decoder) ReadTree(tree []TreeNode) Result[int8] {
	return d.ReadTreeFrom(tree, 0)
}

// ReadTreeFrom walks the tree starting at node start. It allows to skip
// decisions that are already determined by the context. The function
// panics if start is not the index of a tree node.
func (d *Decoder) ReadTreeFrom(tree []TreeNode, start int) Result[int8] {
	s := d.s
	v := s.readTree(d.data, tree, start)
	if d.commit(&s) {
		return Result[int8]{v}
	}
	logFallback(d, "tree")
	return Result[int8]{d.slowReadTree(tree, start)}
}

func logFallback(d *Decoder, op string) {
	xlog.Printf(debug, "checked %s read at word %d of %d", op, d.s.index,
		d.words)
}
