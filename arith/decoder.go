// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arith

import (
	"encoding/binary"
	"math/bits"

	"github.com/ulikunitz/vp8/xlog"
)

// state holds the part of the decoder that is modified by reading
// bits. It is small and copied by value for the speculative reads.
type state struct {
	// index of the next word to load; it may exceed the number of
	// words in a speculative copy
	index int
	// value holds count+8 valid bits of the stream aligned to rng
	value uint64
	// rng is in [128,255] after every decision
	rng uint32
	// count of bits loaded into value but not consumed yet; a negative
	// value requests a refill
	count int32
}

// decide decodes a single bit with the probability p of the bit being
// false. It requires count to be non-negative.
func (s *state) decide(p uint32) bool {
	split := 1 + (((s.rng - 1) * p) >> 8)
	bigsplit := uint64(split) << uint(s.count)
	var bit bool
	if s.value >= bigsplit {
		s.value -= bigsplit
		s.rng -= split
		bit = true
	} else {
		s.rng = split
	}
	// split and rng-split are both in [1,254].
	shift := bits.LeadingZeros8(uint8(s.rng))
	s.rng <<= uint(shift)
	s.count -= int32(shift)
	return bit
}

// The tail field of the decoder counts down the refills the end of a
// partition still permits. Values above tailPhantom count the unread
// tail bytes, tailPhantom permits the single zero byte read past the
// end, tailSpent marks it as used and tailEOF marks a refill attempt
// behind it. The zero value of the Decoder is therefore past the end.
const (
	tailEOF int8 = iota
	tailSpent
	tailPhantom
)

// Decoder decodes the boolean entropy coding of a single partition.
// The decoder keeps a reference to the buffer given to Init and doesn't
// allocate memory while reading.
//
// The zero value is a decoder that is past the end of its stream. A
// decoder must not be used concurrently.
type Decoder struct {
	// data contains only complete words
	data  []byte
	words int
	s     state
	// tail bytes not consumed yet start at final[0]
	final [3]byte
	tail  int8
}

// NewDecoder creates a decoder for the partition p.
func NewDecoder(p []byte) (d *Decoder, err error) {
	d = new(Decoder)
	if err = d.Init(p, len(p)); err != nil {
		return nil, err
	}
	return d, nil
}

// Init prepares the decoder for the partition of the given size stored
// at the start of buf. The bytes of buf behind size are ignored. The
// error ErrNotEnoughInitData is returned if buf cannot provide size
// bytes.
func (d *Decoder) Init(buf []byte, size int) error {
	if !(0 <= size && size <= len(buf)) {
		return ErrNotEnoughInitData
	}
	words := size / 4
	n := 4 * words
	*d = Decoder{
		data:  buf[:n:n],
		words: words,
		s:     state{rng: 255, count: -8},
		tail:  tailPhantom + int8(size-n),
	}
	copy(d.final[:], buf[n:size])
	// The first refill cannot fail; an empty partition uses the
	// phantom byte.
	d.refill()
	return nil
}

// PastEOF reports whether a read has tried to go beyond the end of the
// partition and the tolerated zero byte.
func (d *Decoder) PastEOF() bool {
	return d.tail == tailEOF
}

// refill loads the next word, the next tail byte or the phantom zero
// byte into the value. If nothing is left the decoder is marked as
// past the end of the stream and false is returned.
func (d *Decoder) refill() bool {
	s := &d.s
	if s.index < d.words {
		i := 4 * s.index
		s.value = s.value<<32 | uint64(binary.BigEndian.Uint32(d.data[i:i+4]))
		s.index++
		s.count += 32
		return true
	}
	switch {
	case d.tail > tailPhantom:
		c := d.final[0]
		d.final[0], d.final[1], d.final[2] = d.final[1], d.final[2], 0
		d.tail--
		s.value = s.value<<8 | uint64(c)
		s.count += 8
		return true
	case d.tail == tailPhantom:
		// The reference decoder accepts streams that read one byte
		// past the end.
		xlog.Printf(debug, "reading zero byte behind partition of %d words",
			d.words)
		d.tail = tailSpent
		s.value <<= 8
		s.count += 8
		return true
	}
	xlog.Printf(debug, "end of stream after %d words", d.words)
	d.tail = tailEOF
	return false
}

// readBit is the checked read of a single bit. It returns false without
// changing the state if the end of the stream has been reached.
func (d *Decoder) readBit(p uint32) bool {
	if d.tail == tailEOF {
		return false
	}
	if d.s.count < 0 && !d.refill() {
		return false
	}
	return d.s.decide(p)
}

// The slow functions below are the checked versions of the read
// methods. They are used if the speculative read has consumed words
// behind the partition.

func (d *Decoder) slowReadLiteral(n uint8) uint8 {
	var v uint8
	for i := uint8(0); i < n; i++ {
		v = v<<1 | b2u(d.readBit(128))
	}
	return v
}

func (d *Decoder) slowReadMagnitudeAndSign(n uint8) int32 {
	m := int32(d.slowReadLiteral(n))
	if d.readBit(128) {
		return -m
	}
	return m
}

func (d *Decoder) slowReadOptionalSignedValue(n uint8) int32 {
	if !d.readBit(128) {
		// No further bits must be read if the flag is not set.
		return 0
	}
	return d.slowReadMagnitudeAndSign(n)
}

func (d *Decoder) slowReadTree(tree []TreeNode, i int) int8 {
	for {
		node := tree[i]
		b := node.Left
		if d.readBit(uint32(node.Prob)) {
			b = node.Right
		}
		if int(b) >= len(tree) {
			return LeafValue(b)
		}
		i = int(b)
	}
}

// b2u converts a bool into 0 or 1.
func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Snapshot describes the state of a decoder. It is provided for
// debugging and testing.
type Snapshot struct {
	Index   int
	Words   int
	Value   uint64
	Range   uint32
	Count   int32
	Tail    int
	PastEOF bool
}

// Snapshot returns the current state of the decoder.
func (d *Decoder) Snapshot() Snapshot {
	return Snapshot{
		Index:   d.s.index,
		Words:   d.words,
		Value:   d.s.value,
		Range:   d.s.rng,
		Count:   d.s.count,
		Tail:    int(d.tail),
		PastEOF: d.PastEOF(),
	}
}
