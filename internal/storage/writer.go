package storage

import (
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"
)

type DocumentWriter struct {
	encoder *zstd.Encoder
}

func NewDocumentWriter() (*DocumentWriter, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	return &DocumentWriter{encoder: enc}, nil
}

// Write dumps the documents as a JSON array. Files named *.zst are
// zstd-compressed on the way out.
func (dw *DocumentWriter) Write(path string, docs []*fastjson.Value) error {
	data := marshalArray(docs)

	if strings.HasSuffix(path, CompressedSuffix) {
		data = dw.encoder.EncodeAll(data, nil)
	}

	return os.WriteFile(path, data, 0o644)
}

func (dw *DocumentWriter) Close() error {
	return dw.encoder.Close()
}

func marshalArray(docs []*fastjson.Value) []byte {
	out := make([]byte, 0, 64*len(docs))
	out = append(out, '[')
	for i, doc := range docs {
		if i > 0 {
			out = append(out, ',')
		}
		out = doc.MarshalTo(out)
	}
	return append(out, ']')
}
