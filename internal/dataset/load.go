package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Format identifies a serialized dataset encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

var errUnknownFormat = errors.New("unknown dataset format")

// Load reads a dataset from path. Directories are opened as Badger
// databases; files are decoded by extension, with an optional trailing
// ".zst" meaning zstd compression.
func Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return LoadBadger(path)
	}

	format, compressed, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Decode(f, format, compressed)
}

// DetectFormat infers the encoding of a dataset file from its name.
func DetectFormat(path string) (format Format, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".zst") {
		compressed = true
		name = strings.TrimSuffix(name, ".zst")
	}

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, compressed, nil
	default:
		return "", false, fmt.Errorf("%w: %s", errUnknownFormat, path)
	}
}

// Decode reads a serialized dataset from r.
func Decode(r io.Reader, format Format, compressed bool) (*Dataset, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	days := make(map[string]DailySamples)
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &days)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &days)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s dataset: %w", format, err)
	}

	return New(days)
}

// Encode writes ds to w in the given format.
func Encode(w io.Writer, ds *Dataset, format Format, compressed bool) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(ds.days)
	case FormatMsgpack:
		data, err = msgpack.Marshal(ds.days)
	default:
		return fmt.Errorf("%w: %s", errUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s dataset: %w", format, err)
	}

	if !compressed {
		_, err = io.Copy(w, bytes.NewReader(data))
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// WriteFile stores ds at path using the encoding implied by its name.
func WriteFile(path string, ds *Dataset) error {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	if err := Encode(f, ds, format, compressed); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
