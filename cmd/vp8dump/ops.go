package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kr/pretty"
	"github.com/ulikunitz/vp8/arith"
	"github.com/ulikunitz/vp8/residual"
	"github.com/ulikunitz/vp8/transform"
)

type opKind int

const (
	opFlag opKind = iota
	opBool
	opLit
	opSval
	opSign
	opTree
	opBlock
	opIDCT
	opIWHT
)

// opInfo describes the syntax of an operation. Operations with an
// argument accept values from min to max.
type opInfo struct {
	name     string
	hasArg   bool
	min, max int
}

var opInfos = [...]opInfo{
	opFlag:  {name: "flag"},
	opBool:  {name: "bool", hasArg: true, min: 0, max: 255},
	opLit:   {name: "lit", hasArg: true, min: 1, max: 8},
	opSval:  {name: "sval", hasArg: true, min: 1, max: 8},
	opSign:  {name: "sign", hasArg: true, min: 1, max: 8},
	opTree:  {name: "tree"},
	opBlock: {name: "block"},
	opIDCT:  {name: "idct"},
	opIWHT:  {name: "iwht"},
}

type op struct {
	kind opKind
	arg  uint8
}

func (o op) String() string {
	info := opInfos[o.kind]
	if !info.hasArg {
		return info.name
	}
	return fmt.Sprintf("%s:%d", info.name, o.arg)
}

func lookupOp(name string) (k opKind, ok bool) {
	for i, info := range opInfos {
		if info.name == name {
			return opKind(i), true
		}
	}
	return 0, false
}

// parseOp parses a single operation without the repetition count.
func parseOp(s string) (o op, err error) {
	name, arg, hasArg := strings.Cut(s, ":")
	k, ok := lookupOp(name)
	if !ok {
		return op{}, fmt.Errorf("unknown operation %q", name)
	}
	info := opInfos[k]
	if hasArg != info.hasArg {
		if info.hasArg {
			return op{}, fmt.Errorf("operation %s requires an argument",
				name)
		}
		return op{}, fmt.Errorf("operation %s has no argument", name)
	}
	o.kind = k
	if !hasArg {
		return o, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return op{}, fmt.Errorf("operation %s: argument %q is not a number",
			name, arg)
	}
	if !(info.min <= n && n <= info.max) {
		return op{}, fmt.Errorf("operation %s: argument %d out of range [%d,%d]",
			name, n, info.min, info.max)
	}
	o.arg = uint8(n)
	return o, nil
}

// maxRepeat limits the repetition count of a single operation.
const maxRepeat = 1 << 20

// parseOps parses the comma-separated list of operations. Repeated
// operations are expanded.
func parseOps(s string) (ops []op, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("no operations given")
	}
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		count := 1
		if i := strings.IndexByte(f, '*'); i >= 0 {
			count, err = strconv.Atoi(f[i+1:])
			if err != nil || count < 1 || count > maxRepeat {
				return nil, fmt.Errorf("invalid repetition count in %q",
					f)
			}
			f = f[:i]
		}
		o, err := parseOp(f)
		if err != nil {
			return nil, err
		}
		for ; count > 0; count-- {
			ops = append(ops, o)
		}
	}
	return ops, nil
}

// dumper executes operations on a single partition and writes the
// results to w. The token trees use the probability 128 for every node.
type dumper struct {
	w       io.Writer
	verbose bool

	d      arith.Decoder
	tokens []arith.TreeNode
	trees  residual.TokenTrees
	ctx    int
	block  transform.Block
}

func (x *dumper) init(data []byte, size int) error {
	if err := x.d.Init(data, size); err != nil {
		return err
	}
	var probs residual.TokenProbs
	for b := range probs {
		for c := range probs[b] {
			for k := range probs[b][c] {
				probs[b][c][k] = 128
			}
		}
	}
	x.tokens = arith.MakeTree(residual.TokenTree[:], probs[0][0][:])
	x.trees.Set(&probs)
	x.ctx = 0
	x.block = transform.Block{}
	return nil
}

func (x *dumper) printBlock(o op) {
	fmt.Fprintln(x.w, o)
	for _, row := range x.block {
		fmt.Fprintf(x.w, "  %6d %6d %6d %6d\n", row[0], row[1], row[2],
			row[3])
	}
}

// readValue executes the operations that return a single value.
func (x *dumper) readValue(o op) (v interface{}, err error) {
	d := &x.d
	acc := d.Start()
	switch o.kind {
	case opFlag:
		v = d.ReadFlag().Accumulate(&acc)
	case opBool:
		v = d.ReadBool(o.arg).Accumulate(&acc)
	case opLit:
		v = d.ReadLiteral(o.arg).Accumulate(&acc)
	case opSval:
		v = d.ReadOptionalSignedValue(o.arg).Accumulate(&acc)
	case opSign:
		v = d.ReadMagnitudeAndSign(o.arg).Accumulate(&acc)
	case opTree:
		v = d.ReadTree(x.tokens).Accumulate(&acc)
	default:
		panic(fmt.Errorf("operation %s doesn't return a value", o))
	}
	if err = d.Check(acc); err != nil {
		return nil, err
	}
	return v, nil
}

func (x *dumper) run(o op) error {
	switch o.kind {
	case opBlock:
		nonzero, err := residual.ReadCoefficients(&x.d, &x.trees, 0, x.ctx,
			residual.Quant{DC: 1, AC: 1}, &x.block)
		if err != nil {
			return err
		}
		x.ctx = 0
		if nonzero {
			x.ctx = 1
		}
		x.printBlock(o)
	case opIDCT:
		transform.IDCT4x4(&x.block)
		x.printBlock(o)
	case opIWHT:
		transform.IWHT4x4(&x.block)
		x.printBlock(o)
	default:
		v, err := x.readValue(o)
		if err != nil {
			return err
		}
		fmt.Fprintf(x.w, "%s %v\n", o, v)
	}
	if x.verbose {
		pretty.Fprintf(x.w, "%# v\n", x.d.Snapshot())
	}
	return nil
}

// runAll executes the operations in order and stops at the first error.
func (x *dumper) runAll(ops []op) error {
	for i, o := range ops {
		if err := x.run(o); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i+1, o, err)
		}
	}
	return nil
}
