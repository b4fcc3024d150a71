// Command csvconv converts delimited files between locales using a typed column schema.
//
//	csvconv convert --schema orders.yaml orders.csv orders-de.csv.gz
//	csvconv stat --locale da-DK orders.csv.zst
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/pipeline"
	"github.com/oleg578/typedcsv/internal/schema"
)

// Globals are the flags shared by every command.
type Globals struct {
	Verbose    int `short:"v" type:"counter" help:"Log verbosity (-v info, -vv debug)."`
	BufferSize int `default:"16384" help:"Initial buffer size in bytes."`
}

type cli struct {
	Globals

	Convert convertCmd `cmd:"" help:"Convert a file to another locale under a typed schema."`
	Stat    statCmd    `cmd:"" help:"Report record and field counts of a file."`
}

type convertCmd struct {
	Schema string `short:"s" required:"" type:"existingfile" help:"Column schema (YAML, JSON or CUE)."`
	Input  string `arg:"" help:"Input file; .gz and .zst are decompressed."`
	Output string `arg:"" help:"Output file; .gz and .zst are compressed."`
	CRLF   bool   `name:"crlf" help:"Terminate output records with CRLF."`
}

func (c *convertCmd) Run(ctx context.Context, g *Globals, logger *slog.Logger, fsys afero.Fs) error {
	s, err := schema.Load(fsys, c.Schema)
	if err != nil {
		return err
	}
	in, err := s.InputFormat()
	if err != nil {
		return fmt.Errorf("input locale: %w", err)
	}
	out, err := s.OutputFormat()
	if err != nil {
		return fmt.Errorf("output locale: %w", err)
	}

	common := []typedcsv.Option{typedcsv.WithFS(fsys), typedcsv.WithLogger(logger), typedcsv.WithBufferSize(g.BufferSize)}
	src, err := typedcsv.FromFile(c.Input, append(common, typedcsv.WithFormat(in))...)
	if err != nil {
		return err
	}
	defer src.Close()

	wopts := append(common, typedcsv.WithFormat(out))
	if c.CRLF {
		wopts = append(wopts, typedcsv.WithCRLF())
	}
	dst, err := typedcsv.ToFile(c.Output, wopts...)
	if err != nil {
		return err
	}

	start := time.Now()
	stats, err := pipeline.Convert(ctx, src, dst, s, logger)
	if cerr := dst.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", c.Output, cerr)
	}
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", c.Input, err)
	}

	size := int64(-1)
	if fi, err := fsys.Stat(c.Output); err == nil {
		size = fi.Size()
	}
	logger.Info("converted",
		"records", humanize.Comma(int64(stats.Records)),
		"written", humanize.Bytes(uint64(max(size, 0))),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

type statCmd struct {
	Locale string `short:"l" help:"Locale of the file, e.g. da-DK. Defaults to the environment."`
	Input  string `arg:"" help:"Input file; .gz and .zst are decompressed."`
}

func (c *statCmd) Run(ctx context.Context, g *Globals, logger *slog.Logger, fsys afero.Fs) error {
	cfg := typedcsv.CurrentLocale()
	if c.Locale != "" {
		var err error
		if cfg, err = typedcsv.Locale(c.Locale); err != nil {
			return err
		}
	}
	src, err := typedcsv.FromFile(c.Input,
		typedcsv.WithFS(fsys), typedcsv.WithLogger(logger), typedcsv.WithFormat(cfg), typedcsv.WithBufferSize(g.BufferSize))
	if err != nil {
		return err
	}
	defer src.Close()

	sum, err := pipeline.Scan(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", c.Input, err)
	}
	fmt.Printf("records: %s\nfields:  %d..%d\ndata:    %s\n",
		humanize.Comma(int64(sum.Records)), sum.MinFields, sum.MaxFields, humanize.Bytes(uint64(sum.Bytes)))
	return nil
}

func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity == 1:
		level = slog.LevelInfo
	case verbosity >= 2:
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("csvconv"),
		kong.Description("Typed conversion of delimited text files."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(c.Verbose)
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(afero.NewOsFs(), (*afero.Fs)(nil))
	err := kctx.Run(&c.Globals, logger)
	stop()
	kctx.FatalIfErrorf(err)
}
