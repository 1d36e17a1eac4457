package collectortest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Archive file header
var magicHeader = []byte("STLGARC1")

var ErrBadArchive = errors.New("invalid payload archive header")

// Archive appends accepted payloads to one compressed capture file.
// Layout: 8-byte magic, then a [size uint32][zstd block] pair per payload.
type Archive struct {
	mu      sync.Mutex
	f       *os.File
	encoder *zstd.Encoder
}

// CreateArchive creates (or truncates) the capture file at path.
func CreateArchive(path string) (*Archive, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(magicHeader); err != nil {
		f.Close()
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Archive{f: f, encoder: enc}, nil
}

// Append compresses one payload and writes it as a block.
func (a *Archive) Append(payload []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	compressed := a.encoder.EncodeAll(payload, make([]byte, 0, len(payload)))

	size := uint32(len(compressed))
	if err := binary.Write(a.f, binary.LittleEndian, size); err != nil {
		return err
	}
	_, err := a.f.Write(compressed)
	return err
}

// Close releases the encoder and closes the capture file.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.encoder.Close()
	return a.f.Close()
}

// ReadArchive returns every payload stored in the capture file at path.
func ReadArchive(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, len(magicHeader))
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, err
	}
	if !bytes.Equal(header, magicHeader) {
		return nil, ErrBadArchive
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var payloads [][]byte
	for {
		var size uint32
		if err := binary.Read(f, binary.LittleEndian, &size); err != nil {
			if err == io.EOF {
				return payloads, nil
			}
			return nil, err
		}
		compressed := make([]byte, size)
		if _, err := io.ReadFull(f, compressed); err != nil {
			return nil, err
		}
		payload, err := dec.DecodeAll(compressed, nil)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
}
