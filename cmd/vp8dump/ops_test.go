package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/vp8/arith"
)

func TestParseOps(t *testing.T) {
	ops, err := parseOps("flag, bool:10,lit:8*3,tree,block,idct")
	if err != nil {
		t.Fatalf("parseOps error %s", err)
	}
	want := []op{
		{kind: opFlag},
		{kind: opBool, arg: 10},
		{kind: opLit, arg: 8},
		{kind: opLit, arg: 8},
		{kind: opLit, arg: 8},
		{kind: opTree},
		{kind: opBlock},
		{kind: opIDCT},
	}
	if len(ops) != len(want) {
		t.Fatalf("parseOps returned %d operations; want %d",
			len(ops), len(want))
	}
	for i, o := range ops {
		if o != want[i] {
			t.Errorf("operation %d is %s; want %s", i, o, want[i])
		}
	}

	invalid := []string{
		"", "foo", "flag:1", "bool", "bool:256", "lit:0", "lit:9",
		"sval:x", "flag*0", "flag*", "lit:8,,flag",
	}
	for _, s := range invalid {
		if _, err := parseOps(s); err == nil {
			t.Errorf("parseOps(%q) didn't return an error", s)
		}
	}
}

func dump(t *testing.T, data []byte, ops string) (out string, err error) {
	t.Helper()
	list, err := parseOps(ops)
	if err != nil {
		t.Fatalf("parseOps(%q) error %s", ops, err)
	}
	buf := new(bytes.Buffer)
	x := &dumper{w: buf}
	if err = x.init(data, len(data)); err != nil {
		t.Fatalf("x.init error %s", err)
	}
	err = x.runAll(list)
	return buf.String(), err
}

func TestDumpValues(t *testing.T) {
	out, err := dump(t, []byte("hel"),
		"flag,bool:10,bool:250,lit:1,lit:3,lit:8*2")
	if err != nil {
		t.Fatalf("runAll error %s", err)
	}
	const want = "flag false\nbool:10 true\nbool:250 false\n" +
		"lit:1 1\nlit:3 5\nlit:8 64\nlit:8 185\n"
	if out != want {
		t.Fatalf("got output\n%s\nwant\n%s", out, want)
	}
}

func TestDumpBlock(t *testing.T) {
	data, err := hex.DecodeString(
		"accc70e02756fd4cd2cae19a570c42bda56a7ff367c653cf")
	if err != nil {
		t.Fatalf("hex.DecodeString error %s", err)
	}
	out, err := dump(t, data, "block,idct")
	if err != nil {
		t.Fatalf("runAll error %s", err)
	}
	const want = "block\n" +
		"       0     -1      0     -3\n" +
		"       0      0      6      0\n" +
		"       1      0      2      0\n" +
		"       0      0     -5      2\n" +
		"idct\n" +
		"       0      0     -1      1\n" +
		"       0      0     -2      2\n" +
		"      -2      2      1     -1\n" +
		"      -1      1      0      1\n"
	if out != want {
		t.Fatalf("got output\n%s\nwant\n%s", out, want)
	}
}

func TestDumpEndOfStream(t *testing.T) {
	_, err := dump(t, []byte("hel"), "lit:8*10")
	if !errors.Is(err, arith.ErrBitStream) {
		t.Fatalf("runAll returned %v; want %v", err, arith.ErrBitStream)
	}
}

func TestReadInputZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		t.Fatalf("zstd.NewWriter error %s", err)
	}
	want := []byte("The quick brown fox jumps over the lazy dog")
	frame := enc.EncodeAll(want, nil)
	if err = enc.Close(); err != nil {
		t.Fatalf("enc.Close error %s", err)
	}
	dir := t.TempDir()
	tests := []struct {
		name string
		data []byte
	}{
		{"fox.bin", want},
		{"fox.bin.zst", frame},
	}
	for _, tc := range tests {
		path := filepath.Join(dir, tc.name)
		if err = os.WriteFile(path, tc.data, 0o644); err != nil {
			t.Fatalf("os.WriteFile error %s", err)
		}
		data, err := readInput(path)
		if err != nil {
			t.Fatalf("readInput(%q) error %s", tc.name, err)
		}
		if !bytes.Equal(data, want) {
			t.Errorf("readInput(%q) returned %q; want %q", tc.name,
				data, want)
		}
	}
	if _, err = unzstd([]byte("no zstd frame")); err == nil {
		t.Errorf("unzstd of garbage didn't return an error")
	}
}
