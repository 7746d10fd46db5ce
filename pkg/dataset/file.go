package dataset

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"golang.org/x/exp/mmap"
)

// Dataset file layout, little-endian throughout:
//
//	offset 0: magic "FITD"
//	offset 4: uint32 format version (currently 1)
//	offset 8: uint64 observation count
//	offset 16: count * float64 observations
const (
	fileMagic   = "FITD"
	fileVersion = 1
	headerSize  = 16
)

// Save writes the dataset to path.
func (d *Dataset) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, headerSize+8*len(d.values))
	copy(buf[0:4], fileMagic)
	binary.LittleEndian.PutUint32(buf[4:8], fileVersion)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(d.values)))
	for i, v := range d.values {
		binary.LittleEndian.PutUint64(buf[headerSize+8*i:], math.Float64bits(v))
	}

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return nil
}

// Load memory-maps a dataset file and decodes the observation array.
func Load(path string) (*Dataset, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap dataset file: %w", err)
	}
	defer r.Close()

	if r.Len() < headerSize {
		return nil, fmt.Errorf("dataset file too small for header")
	}

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	if string(data[0:4]) != fileMagic {
		return nil, fmt.Errorf("invalid magic %q", data[0:4])
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != fileVersion {
		return nil, fmt.Errorf("unsupported dataset version %d", v)
	}

	// Divide rather than multiply so a hostile count cannot wrap the check.
	count := binary.LittleEndian.Uint64(data[8:16])
	if count > uint64(len(data)-headerSize)/8 {
		return nil, fmt.Errorf("dataset file truncated: header claims %d observations", count)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[headerSize+8*i:]))
	}
	return &Dataset{values: values}, nil
}
