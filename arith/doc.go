// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package arith implements the boolean entropy decoder of VP8 partitions.

A Decoder narrows an 8-bit interval with every decoded decision. The
probability argument of the read methods is the likelihood of the false
branch scaled to 256. The decoder reproduces the reference decoder bit
for bit, including its leniency of reading a single zero byte past the
end of a partition.

Every read method is executed speculatively on a copy of the decoder
state that pretends the partition is followed by an infinite number of
zero words. If the copy didn't consume any of those words it replaces
the state, otherwise it is discarded and the read is repeated by the
checked path, which handles the tail bytes and the end of the stream.

The read methods return a Result. Its value can only be extracted by
accumulating the burden of checking into an Accumulator, which must be
checked by the decoder once a logical unit of work has been read:

	acc := d.Start()
	mode := d.ReadTree(modeTree).Accumulate(&acc)
	q := d.ReadOptionalSignedValue(4).Accumulate(&acc)
	if err := d.Check(acc); err != nil {
		return err
	}

The Checked function does the same for a single read.
*/
package arith
