package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

// Format is the bundle encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// IsValid checks if the format is one of the supported values.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatCBOR
}

// Compression is the optional outer compression of a bundle file.
type Compression string

// Supported compressions.
const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// IsValid checks if the compression is one of the supported values.
func (c Compression) IsValid() bool {
	return c == CompressionNone || c == CompressionZstd || c == CompressionLZ4
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bundle: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("bundle: CBOR decoder initialization failed: " + err.Error())
	}
}

// DetectPath derives format and compression from a file name such as
// "corpus.json", "corpus.yaml.zst" or "corpus.cbor.lz4".
func DetectPath(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))
	comp := CompressionNone
	switch {
	case strings.HasSuffix(name, ".zst"):
		comp = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		comp = CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, comp, nil
	case ".yaml", ".yml":
		return FormatYAML, comp, nil
	case ".cbor":
		return FormatCBOR, comp, nil
	default:
		return "", "", fmt.Errorf("%w: cannot infer bundle format from %q", domain.ErrUnsupportedFormat, path)
	}
}

// Load reads, decodes and validates a bundle file.
func Load(path string) (*Bundle, error) {
	format, comp, err := DetectPath(path)
	if err != nil {
		return nil, err
	}
	return LoadAs(path, format, comp)
}

// LoadAs reads a bundle file with an explicit format and compression.
func LoadAs(path string, format Format, comp Compression) (*Bundle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, closeFn, err := decompress(f, comp)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	b, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}
	return b, nil
}

// Decode reads one bundle from r and validates it.
func Decode(r io.Reader, format Format) (*Bundle, error) {
	var b Bundle
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&b); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&b); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatCBOR:
		if err := decMode.NewDecoder(r).Decode(&b); err != nil {
			return nil, fmt.Errorf("decode cbor: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: format %q", domain.ErrUnsupportedFormat, format)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Encode writes b to w. Used to produce fixtures and converted bundles.
func Encode(w io.Writer, b *Bundle, format Format, comp Compression) error {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatCBOR:
		data, err := encMode.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		buf.Write(data)
	default:
		return fmt.Errorf("%w: format %q", domain.ErrUnsupportedFormat, format)
	}
	return compress(w, buf.Bytes(), comp)
}

func decompress(r io.Reader, comp Compression) (io.Reader, func(), error) {
	switch comp {
	case "", CompressionNone:
		return r, func() {}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: compression %q", domain.ErrUnsupportedFormat, comp)
	}
}

func compress(w io.Writer, data []byte, comp Compression) error {
	switch comp {
	case "", CompressionNone:
		_, err := w.Write(data)
		return err
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("zstd write: %w", err)
		}
		return zw.Close()
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		if _, err := lw.Write(data); err != nil {
			_ = lw.Close()
			return fmt.Errorf("lz4 write: %w", err)
		}
		return lw.Close()
	default:
		return fmt.Errorf("%w: compression %q", domain.ErrUnsupportedFormat, comp)
	}
}
