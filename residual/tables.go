package residual

// Tokens of the DCT token tree. The values 1 to 4 are the absolute
// values of the coefficient; the categories are followed by extra bits.
const (
	token0 int8 = iota
	token1
	token2
	token3
	token4
	tokenCat1
	tokenCat2
	tokenCat3
	tokenCat4
	tokenCat5
	tokenCat6
	tokenEOB
)

// TokenTree is the DCT token tree in the branch notation of the arith
// package. Node 0 decides on the end of block; node 1 is the start node
// after a zero token, because the end of block cannot follow it.
var TokenTree = [2 * NumProbs]int8{
	-tokenEOB, 2, -token0, 4, -token1, 6, 8, 12, -token2, 10, -token3,
	-token4, 14, 16, -tokenCat1, -tokenCat2, 18, 20, -tokenCat3,
	-tokenCat4, -tokenCat5, -tokenCat6,
}

// Bands maps coefficient positions to the bands of the token
// probabilities.
var Bands = [16]uint8{0, 1, 2, 3, 6, 4, 5, 6, 6, 6, 6, 6, 6, 6, 6, 7}

// Zigzag maps coefficient positions to the raster index of the 4x4
// block.
var Zigzag = [16]uint8{0, 1, 4, 8, 5, 2, 3, 6, 9, 12, 13, 10, 7, 11, 14, 15}

// catBase contains the smallest absolute value of each category.
var catBase = [6]int32{5, 7, 11, 19, 35, 67}

// catProbs contains the probabilities of the extra bits of each
// category, most-significant bit first.
var catProbs = [6][]uint8{
	{159},
	{165, 145},
	{173, 148, 140},
	{176, 155, 140, 135},
	{180, 157, 141, 134, 130},
	{254, 254, 243, 230, 196, 177, 153, 140, 133, 130, 129},
}
