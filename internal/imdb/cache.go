package imdb

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Binary cache layout (little-endian):
//
//	magic   [4]byte "IMDB"
//	version uint16
//	2 splits (train, test), each:
//	    count uint32
//	    per review:
//	        label  uint8 (0 or 1)
//	        length uint32
//	        ranks  [length]uint32
const (
	cacheMagic   = "IMDB"
	cacheVersion = 1
)

// writeCache writes the full-rank corpus to path atomically.
func writeCache(path string, corpus *rawCorpus) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := writeCacheTo(w, corpus); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

func writeCacheTo(w *bufio.Writer, corpus *rawCorpus) error {
	if _, err := w.WriteString(cacheMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(cacheVersion)); err != nil {
		return err
	}

	for _, split := range []*Split{&corpus.train, &corpus.test} {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(split.Sequences))); err != nil {
			return err
		}
		for i, seq := range split.Sequences {
			if err := w.WriteByte(byte(split.Labels[i])); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(len(seq))); err != nil {
				return err
			}
			for _, rank := range seq {
				if err := binary.Write(w, binary.LittleEndian, uint32(rank)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// readCache loads the full-rank corpus from path. Returns an error
// satisfying os.IsNotExist when the cache has not been written yet.
func readCache(path string) (*rawCorpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	magic := make([]byte, len(cacheMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("cache header: %w", err)
	}
	if string(magic) != cacheMagic {
		return nil, fmt.Errorf("bad cache magic %q", magic)
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("cache version: %w", err)
	}
	if version != cacheVersion {
		return nil, fmt.Errorf("unsupported cache version %d", version)
	}

	corpus := &rawCorpus{}
	for _, split := range []*Split{&corpus.train, &corpus.test} {
		var count uint32
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("cache split count: %w", err)
		}

		split.Sequences = make([][]int32, count)
		split.Labels = make([]float32, count)

		for i := uint32(0); i < count; i++ {
			label, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("cache label: %w", err)
			}
			if label > 1 {
				return nil, fmt.Errorf("cache label out of range: %d", label)
			}
			split.Labels[i] = float32(label)

			var length uint32
			if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
				return nil, fmt.Errorf("cache sequence length: %w", err)
			}

			seq := make([]int32, length)
			for j := range seq {
				var rank uint32
				if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
					return nil, fmt.Errorf("cache rank: %w", err)
				}
				seq[j] = int32(rank)
			}
			split.Sequences[i] = seq
		}
	}

	return corpus, nil
}
