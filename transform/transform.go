// Package transform implements the inverse transforms of VP8 residual
// blocks.
package transform

// Block is a 4x4 block of coefficients or residuals. The first index
// selects the row.
type Block [4][4]int32

// Multipliers of the inverse DCT: sqrt(2)*cos(pi/8)-1 and
// sqrt(2)*sin(pi/8), both scaled by 65536.
const (
	c1 = 20091
	c2 = 35468
)

// mul1 returns x*(1+c1/65536) and mul2 returns x*c2/65536. The products
// don't fit into 32 bits for all valid coefficients.
func mul1(x int32) int32 { return x + int32((int64(x)*c1)>>16) }
func mul2(x int32) int32 { return int32((int64(x) * c2) >> 16) }

// IDCT4x4 applies the inverse discrete cosine transform to the block in
// place. The columns are transformed first, then the rows; the result
// is rounded by (x+4)>>3.
func IDCT4x4(b *Block) {
	var t Block
	for x := 0; x < 4; x++ {
		a1 := b[0][x] + b[2][x]
		b1 := b[0][x] - b[2][x]
		c := mul2(b[1][x]) - mul1(b[3][x])
		d := mul1(b[1][x]) + mul2(b[3][x])
		t[0][x] = a1 + d
		t[1][x] = b1 + c
		t[2][x] = b1 - c
		t[3][x] = a1 - d
	}
	for y := 0; y < 4; y++ {
		r := &t[y]
		a1 := r[0] + r[2]
		b1 := r[0] - r[2]
		c := mul2(r[1]) - mul1(r[3])
		d := mul1(r[1]) + mul2(r[3])
		b[y][0] = (a1 + d + 4) >> 3
		b[y][1] = (b1 + c + 4) >> 3
		b[y][2] = (b1 - c + 4) >> 3
		b[y][3] = (a1 - d + 4) >> 3
	}
}

// IWHT4x4 applies the inverse Walsh-Hadamard transform to the block in
// place. It is used for the block of the DC coefficients of the luma
// subblocks. The result is rounded by (x+3)>>3.
func IWHT4x4(b *Block) {
	var t Block
	for x := 0; x < 4; x++ {
		a1 := b[0][x] + b[3][x]
		b1 := b[1][x] + b[2][x]
		c1 := b[1][x] - b[2][x]
		d1 := b[0][x] - b[3][x]
		t[0][x] = a1 + b1
		t[1][x] = c1 + d1
		t[2][x] = a1 - b1
		t[3][x] = d1 - c1
	}
	for y := 0; y < 4; y++ {
		r := &t[y]
		a1 := r[0] + r[3]
		b1 := r[1] + r[2]
		c1 := r[1] - r[2]
		d1 := r[0] - r[3]
		b[y][0] = (a1 + b1 + 3) >> 3
		b[y][1] = (c1 + d1 + 3) >> 3
		b[y][2] = (a1 - b1 + 3) >> 3
		b[y][3] = (d1 - c1 + 3) >> 3
	}
}
