// Package corpus provides the files of a test corpus as byte slices and
// splits them into partitions for the decoder tests and benchmarks.
package corpus

import (
	"io/fs"
)

// File is a corpus file read into memory.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus.
func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

// Size returns the total number of bytes of the files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

// Partition is a part of a corpus file used as the data of a single
// entropy-coded partition.
type Partition struct {
	Name string
	Data []byte
}

// Partitions returns the head and the tail of each file with at most n
// bytes each. The lengths of the tails are varied by the file index, so
// all tail lengths modulo four are covered by a corpus of four or more
// files. The function panics if n is not positive.
func Partitions(files []File, n int) []Partition {
	if n <= 0 {
		panic("corpus: partition size must be positive")
	}
	var parts []Partition
	for i, f := range files {
		head := f.Data
		if len(head) > n {
			head = head[:n]
		}
		parts = append(parts, Partition{Name: f.Name + ":head", Data: head})
		k := n - i%4
		if k <= 0 || len(f.Data) <= k {
			continue
		}
		parts = append(parts, Partition{
			Name: f.Name + ":tail",
			Data: f.Data[len(f.Data)-k:],
		})
	}
	return parts
}
