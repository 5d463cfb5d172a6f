package arith

// Result holds a value read from a decoder that is only valid if the
// read didn't go past the end of the stream. The value can only be
// obtained by handing the obligation to check over to an Accumulator.
type Result[T any] struct {
	value T
}

// Accumulate returns the value of the result. It may not be trusted
// before the decoder has checked the accumulator.
func (r Result[T]) Accumulate(acc *Accumulator) T {
	_ = acc
	return r.value
}

// Accumulator collects the obligation to check a sequence of reads. It
// stores no state: the check only inspects whether the decoder has gone
// past the end of the stream, which cannot be undone by further reads.
// Passing the accumulator around costs nothing but makes it visible
// where the check is missing.
type Accumulator struct {
	_ [0]func()
}

// Start starts a sequence of reads that will be checked by a single
// call to Check. Every accumulator obtained from Start must be checked
// by the same decoder.
func (d *Decoder) Start() Accumulator {
	return Accumulator{}
}

// Check verifies that the reads accumulated in acc were all valid. It
// returns ErrBitStream if the decoder has gone past the end of the
// stream.
func (d *Decoder) Check(acc Accumulator) error {
	_ = acc
	if d.PastEOF() {
		return ErrBitStream
	}
	return nil
}

// Checked returns the value of a single read result after checking it.
func Checked[T any](d *Decoder, r Result[T]) (v T, err error) {
	acc := d.Start()
	v = r.Accumulate(&acc)
	if err = d.Check(acc); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
