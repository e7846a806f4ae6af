package fetcher

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// DecodeJSONObject decodes a single JSON value from a reader.
func DecodeJSONObject[T any](r io.Reader) (*T, error) {
	var obj T
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, eris.Wrap(err, "json: decode object")
	}
	return &obj, nil
}

// DecodeJSONFile decodes a single JSON value from a file on disk.
func DecodeJSONFile[T any](path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "json: open %s", path)
	}
	defer func() { _ = f.Close() }()

	obj, err := DecodeJSONObject[T](f)
	if err != nil {
		return nil, eris.Wrapf(err, "json: decode %s", path)
	}
	return obj, nil
}
