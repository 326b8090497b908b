// Package storage loads and dumps JSON document collections, with
// transparent zstd compression for files carrying the .zst suffix.
package storage

import (
	"errors"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"
)

var ErrNotArray = errors.New("document file must contain a JSON array")

// CompressedSuffix marks files that are zstd-compressed.
const CompressedSuffix = ".zst"

type DocumentReader struct {
	decoder *zstd.Decoder
}

func NewDocumentReader() (*DocumentReader, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &DocumentReader{decoder: dec}, nil
}

// Read loads a file containing a JSON array and returns its elements.
// Files named *.zst are decompressed first. The returned values stay
// valid after the call; each Read parses into a fresh arena.
func (dr *DocumentReader) Read(path string) ([]*fastjson.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, CompressedSuffix) {
		data, err = dr.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
	}

	var p fastjson.Parser
	root, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	docs, err := root.Array()
	if err != nil {
		return nil, ErrNotArray
	}
	return docs, nil
}

func (dr *DocumentReader) Close() {
	dr.decoder.Close()
}
