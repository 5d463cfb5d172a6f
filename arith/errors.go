package arith

import "errors"

// ErrNotEnoughInitData is returned by Init if the buffer cannot supply
// the declared length of the partition.
var ErrNotEnoughInitData = errors.New("arith: not enough init data")

// ErrBitStream is returned by Check if reads went beyond the end of the
// partition and the single tolerated zero byte behind it.
var ErrBitStream = errors.New("arith: bit stream error")
