package typedcsv

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/spf13/afero"
)

// FromFile opens path on the configured file system (see WithFS) and returns a Reader over it.
// Files ending in ".gz" are gunzipped and files ending in ".zst" or ".zstd" are
// zstd-decompressed on the fly. Close the Reader to release the file.
func FromFile(path string, opts ...Option) (*Reader, error) {
	o := buildOptions(opts)
	f, err := o.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	src, closer, err := decompress(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	o.logger.Debug("typedcsv: reading file", "path", path)
	return newReader(src, closer, o), nil
}

// ToFile creates or truncates path on the configured file system and returns a Writer to it,
// compressing by extension like FromFile. Close the Writer to flush and release the file.
func ToFile(path string, opts ...Option) (*Writer, error) {
	o := buildOptions(opts)
	f, err := o.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	dst, closer, err := compress(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	o.logger.Debug("typedcsv: writing file", "path", path)
	return newWriter(dst, closer, o), nil
}

func decompress(f afero.File, path string) (io.Reader, io.Closer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read gzip header of %s: %w", path, err)
		}
		return zr, closers{zr, f}, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd decoder for %s: %w", path, err)
		}
		return zr, closers{zr.IOReadCloser(), f}, nil
	}
	return f, f, nil
}

func compress(f afero.File, path string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zw := pgzip.NewWriter(f)
		return zw, closers{zw, f}, nil
	case ".zst", ".zstd":
		zw, err := zstd.NewWriter(f, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd encoder for %s: %w", path, err)
		}
		return zw, closers{zw, f}, nil
	}
	return f, f, nil
}

// closers closes every element in order and joins the errors.
type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
