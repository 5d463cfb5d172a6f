package residual

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/ulikunitz/vp8/arith"
	"github.com/ulikunitz/vp8/transform"
)

func flatProbs(p uint8) *TokenProbs {
	var probs TokenProbs
	for b := range probs {
		for c := range probs[b] {
			for k := range probs[b][c] {
				probs[b][c][k] = p
			}
		}
	}
	return &probs
}

// variedProbs returns probabilities that differ for every band, context
// and node.
func variedProbs() *TokenProbs {
	var probs TokenProbs
	for b := range probs {
		for c := range probs[b] {
			for k := range probs[b][c] {
				probs[b][c][k] = uint8((37*b+11*c+7*k+20)%255 + 1)
			}
		}
	}
	return &probs
}

func newTrees(p *TokenProbs) *TokenTrees {
	trees := new(TokenTrees)
	trees.Set(p)
	return trees
}

func mustDecoder(t *testing.T, data []byte) *arith.Decoder {
	t.Helper()
	d, err := arith.NewDecoder(data)
	if err != nil {
		t.Fatalf("arith.NewDecoder error %s", err)
	}
	return d
}

func TestTokenTree(t *testing.T) {
	// MakeTree panics if the tree is malformed.
	tree := arith.MakeTree(TokenTree[:], make([]uint8, NumProbs))
	if len(tree) != NumProbs {
		t.Fatalf("token tree has %d nodes; want %d", len(tree), NumProbs)
	}
	if l := arith.LeafValue(tree[0].Left); l != tokenEOB {
		t.Fatalf("left branch of node 0 is %d; want end of block", l)
	}
	if l := arith.LeafValue(tree[1].Left); l != token0 {
		t.Fatalf("left branch of node 1 is %d; want zero token", l)
	}
}

func TestReadCoefficients(t *testing.T) {
	data, err := hex.DecodeString(
		"accc70e02756fd4cd2cae19a570c42bda56a7ff367c653cf")
	if err != nil {
		t.Fatalf("hex.DecodeString error %s", err)
	}
	tests := []struct {
		q    Quant
		want transform.Block
	}{
		{Quant{DC: 1, AC: 1}, transform.Block{
			{0, -1, 0, -3},
			{0, 0, 6, 0},
			{1, 0, 2, 0},
			{0, 0, -5, 2},
		}},
		{Quant{DC: 4, AC: 7}, transform.Block{
			{0, -7, 0, -21},
			{0, 0, 42, 0},
			{7, 0, 14, 0},
			{0, 0, -35, 14},
		}},
	}
	trees := newTrees(flatProbs(128))
	for _, tc := range tests {
		d := mustDecoder(t, data)
		b := transform.Block{{99, 99}}
		nonzero, err := ReadCoefficients(d, trees, 0, 0, tc.q, &b)
		if err != nil {
			t.Fatalf("ReadCoefficients error %s", err)
		}
		if !nonzero {
			t.Errorf("ReadCoefficients returned no coefficients")
		}
		if diff := pretty.Diff(b, tc.want); len(diff) > 0 {
			t.Errorf("quant %+v: %v", tc.q, diff)
		}
	}
}

// TestReadCoefficientsSequence decodes consecutive blocks with
// different planes and contexts from the same partition.
func TestReadCoefficientsSequence(t *testing.T) {
	d := mustDecoder(t,
		[]byte("The quick brown fox jumps over the lazy dog"))
	trees := newTrees(variedProbs())
	q := Quant{DC: 4, AC: 7}
	tests := []struct {
		plane   Plane
		ctx     int
		nonzero bool
		want    transform.Block
	}{
		// 315 is the category 5 value 45 dequantized.
		{PlaneYAfterY2, 2, true, transform.Block{{}, {}, {}, {0, 0, 0, 315}}},
		{PlaneChroma, 1, true, transform.Block{{76}, {-14}}},
		{PlaneYWithDC, 0, true, transform.Block{{-124}, {7}}},
	}
	for i, tc := range tests {
		var b transform.Block
		nonzero, err := ReadCoefficients(d, trees, tc.plane.FirstCoeff(),
			tc.ctx, q, &b)
		if err != nil {
			t.Fatalf("block %d: ReadCoefficients error %s", i, err)
		}
		if nonzero != tc.nonzero {
			t.Errorf("block %d: nonzero %t; want %t", i, nonzero,
				tc.nonzero)
		}
		if diff := pretty.Diff(b, tc.want); len(diff) > 0 {
			t.Errorf("block %d: %v", i, diff)
		}
	}
}

func TestReadCoefficientsEndOfBlock(t *testing.T) {
	// The first decision of "hello" is the end of block.
	d := mustDecoder(t, []byte("hello world, residual"))
	var b transform.Block
	nonzero, err := ReadCoefficients(d, newTrees(flatProbs(128)), 0, 0,
		Quant{1, 1}, &b)
	if err != nil {
		t.Fatalf("ReadCoefficients error %s", err)
	}
	if nonzero || b != (transform.Block{}) {
		t.Fatalf("got nonzero %t, block %v; want empty block", nonzero, b)
	}
}

func TestReadCoefficientsEOF(t *testing.T) {
	d := mustDecoder(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	var b transform.Block
	_, err := ReadCoefficients(d, newTrees(flatProbs(128)), 0, 0,
		Quant{1, 1}, &b)
	if !errors.Is(err, arith.ErrBitStream) {
		t.Fatalf("ReadCoefficients returned %v; want %v", err,
			arith.ErrBitStream)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v has type %T; want %T", err, err, e)
	}
	if e.Op != "read coefficients" {
		t.Fatalf("e.Op is %q", e.Op)
	}
}

func TestInverse(t *testing.T) {
	b := transform.Block{{100}}
	Inverse(&b, PlaneY2)
	want := transform.Block{
		{12, 12, 12, 12}, {12, 12, 12, 12}, {12, 12, 12, 12}, {12, 12, 12, 12},
	}
	if b != want {
		t.Fatalf("Inverse Y2: %v; want %v", b, want)
	}
	b = transform.Block{{100}}
	Inverse(&b, PlaneChroma)
	want = transform.Block{
		{13, 13, 13, 13}, {13, 13, 13, 13}, {13, 13, 13, 13}, {13, 13, 13, 13},
	}
	if b != want {
		t.Fatalf("Inverse chroma: %v; want %v", b, want)
	}

	y2 := transform.Block{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15},
	}
	var blocks [16]transform.Block
	SpreadDC(&y2, &blocks)
	for i, blk := range blocks {
		if blk[0][0] != int32(i) {
			t.Errorf("block %d has DC %d; want %d", i, blk[0][0], i)
		}
	}
}
