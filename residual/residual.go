// Package residual decodes the DCT coefficients of VP8 subblocks from a
// boolean-coded partition and converts them into residuals.
package residual

import (
	"github.com/ulikunitz/vp8/arith"
	"github.com/ulikunitz/vp8/transform"
)

// Dimensions of the token probabilities.
const (
	NumPlanes   = 4
	NumBands    = 8
	NumContexts = 3
	NumProbs    = 11
)

// Plane identifies the kind of a subblock. The value is the first index
// of the token probabilities.
type Plane int

const (
	// PlaneYAfterY2 is a luma block whose DC coefficient is coded in
	// the Y2 block.
	PlaneYAfterY2 Plane = iota
	// PlaneY2 is the block of the DC coefficients of the luma blocks.
	PlaneY2
	// PlaneChroma is a chroma block.
	PlaneChroma
	// PlaneYWithDC is a luma block including its DC coefficient.
	PlaneYWithDC
)

// FirstCoeff returns the position of the first coded coefficient of a
// block in the plane.
func (p Plane) FirstCoeff() int {
	if p == PlaneYAfterY2 {
		return 1
	}
	return 0
}

// TokenProbs are the token probabilities of a single plane, indexed by
// band, context and tree node.
type TokenProbs [NumBands][NumContexts][NumProbs]uint8

// TokenTrees are the token trees for all bands and contexts of a plane.
type TokenTrees [NumBands][NumContexts][NumProbs]arith.TreeNode

// Set updates the trees to the probabilities p. It doesn't allocate and
// may be called after every update of the probabilities.
func (t *TokenTrees) Set(p *TokenProbs) {
	for b := range t {
		for c := range t[b] {
			arith.FillTree(t[b][c][:], TokenTree[:], p[b][c][:])
		}
	}
}

// Quant provides the dequantization factors for the DC and the AC
// coefficients.
type Quant struct {
	DC int32
	AC int32
}

// ReadCoefficients decodes the coefficients of a single subblock into b
// and dequantizes them. The block is cleared first. The argument first
// is the position of the first coefficient and ctx the number of
// neighbour blocks with coefficients (0 to 2). The function reports
// whether the block has coded coefficients, which provides the context
// for the following blocks.
//
// The block must be discarded if an error is returned.
func ReadCoefficients(d *arith.Decoder, trees *TokenTrees, first, ctx int,
	q Quant, b *transform.Block) (nonzero bool, err error) {

	*b = transform.Block{}
	acc := d.Start()
	start := 0
	for i := first; i < 16; i++ {
		tree := trees[Bands[i]][ctx][:]
		token := d.ReadTreeFrom(tree, start).Accumulate(&acc)
		if token == tokenEOB {
			break
		}
		nonzero = true
		if token == token0 {
			// The end of block cannot follow a zero.
			start = 1
			ctx = 0
			continue
		}
		v := int32(token)
		if token >= tokenCat1 {
			c := token - tokenCat1
			var extra int32
			for _, p := range catProbs[c] {
				extra <<= 1
				if d.ReadBool(p).Accumulate(&acc) {
					extra |= 1
				}
			}
			v = catBase[c] + extra
		}
		start = 0
		if v == 1 {
			ctx = 1
		} else {
			ctx = 2
		}
		if d.ReadFlag().Accumulate(&acc) {
			v = -v
		}
		z := Zigzag[i]
		f := q.AC
		if z == 0 {
			f = q.DC
		}
		b[z/4][z%4] = v * f
	}
	if err = d.Check(acc); err != nil {
		return false, &Error{Op: "read coefficients", Err: err}
	}
	return nonzero, nil
}

// Inverse converts the dequantized coefficients of a block of the plane
// into residuals. Y2 blocks use the inverse Walsh-Hadamard transform,
// all others the inverse DCT.
func Inverse(b *transform.Block, p Plane) {
	if p == PlaneY2 {
		transform.IWHT4x4(b)
		return
	}
	transform.IDCT4x4(b)
}

// SpreadDC copies the output of the inverse transform of a Y2 block into
// the DC coefficients of the 16 luma blocks of a macroblock.
func SpreadDC(y2 *transform.Block, blocks *[16]transform.Block) {
	for i := range blocks {
		blocks[i][0][0] = y2[i/4][i%4]
	}
}
