package typedcsv

import (
	"log/slog"

	"github.com/spf13/afero"
)

// Option configures a Reader or Writer at construction.
type Option func(*options)

type options struct {
	format     *FormatConfig
	bufferSize int
	logger     *slog.Logger
	fs         afero.Fs
	crlf       bool
}

func buildOptions(opts []Option) options {
	o := options{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.format == nil {
		cfg := CurrentLocale()
		o.format = &cfg
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	return o
}

// WithFormat sets the format (separator, number and date conventions). The default is the
// ambient locale, see CurrentLocale.
func WithFormat(cfg FormatConfig) Option {
	return func(o *options) { o.format = &cfg }
}

// WithBufferSize sets the initial buffer capacity in bytes. The buffer still grows as needed.
func WithBufferSize(n int) Option {
	return func(o *options) { o.bufferSize = n }
}

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFS sets the file system used by FromFile and ToFile. The default is the OS file system.
func WithFS(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithCRLF makes a Writer terminate records with "\r\n" instead of "\n".
func WithCRLF() Option {
	return func(o *options) { o.crlf = true }
}
