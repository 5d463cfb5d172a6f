// Command vp8dump decodes a sequence of operations from a VP8
// boolean-coded partition and prints the decoded values.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"
	"github.com/ulikunitz/vp8/arith"
)

const version = "0.1.0"

const usageStr = `Usage: vp8dump [OPTION]... [FILE]...
Decode the operations given by --ops from each VP8 partition FILE and
print the decoded values.

  -h, --help        give this help
  -n, --size N      declared partition size; default is the file size
  -o, --ops LIST    comma-separated operations; default is lit:8*16
  -v, --verbose     print the decoder state after each operation and
                    log fallbacks to the checked path
  -V, --version     display version string

Operations:
  flag      bit with even probability
  bool:P    bit with probability P/256 for false
  lit:N     literal of N bits (1 to 8)
  sval:N    optional signed value with N magnitude bits (1 to 8)
  sign:N    N magnitude bits followed by a sign (1 to 8)
  tree      DCT token with even token probabilities
  block     coefficients of a 4x4 block with even token probabilities
  idct      inverse DCT of the last block
  iwht      inverse Walsh-Hadamard transform of the last block

An operation may be followed by *COUNT to repeat it. Files with the
suffix .zst are decompressed first. With no file, or when FILE is -,
read standard input.
`

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

func main() {
	// setup logger
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	log.SetFlags(0)

	// initialize flags
	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.SetInterspersed(true)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help    = pflag.BoolP("help", "h", false, "")
		size    = pflag.IntP("size", "n", -1, "")
		opsArg  = pflag.StringP("ops", "o", "lit:8*16", "")
		verbose = pflag.BoolP("verbose", "v", false, "")
		printV  = pflag.BoolP("version", "V", false, "")
	)
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if *printV {
		fmt.Printf("vp8dump %s\n", version)
		os.Exit(0)
	}
	ops, err := parseOps(*opsArg)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		arith.SetLogger(log.Default())
	}

	paths := pflag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	w := bufio.NewWriter(os.Stdout)
	status := 0
	for _, path := range paths {
		data, err := readInput(path)
		if err != nil {
			log.Print(err)
			status = 1
			continue
		}
		if len(paths) > 1 {
			fmt.Fprintf(w, "%s:\n", path)
		}
		x := &dumper{w: w, verbose: *verbose}
		n := *size
		if n < 0 {
			n = len(data)
		}
		if err = x.init(data, n); err != nil {
			log.Printf("%s: %s", path, err)
			status = 1
			continue
		}
		if err = x.runAll(ops); err != nil {
			log.Printf("%s: %s", path, err)
			status = 1
		}
	}
	if err = w.Flush(); err != nil {
		log.Fatal(err)
	}
	os.Exit(status)
}
