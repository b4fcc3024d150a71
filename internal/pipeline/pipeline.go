// Package pipeline moves records from a Reader to a Writer, decoding and encoding on separate
// goroutines.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/schema"
)

// queueSize is the number of decoded rows that may wait for the encoder.
const queueSize = 256

// Stats summarizes a conversion.
type Stats struct {
	Records int
}

// Convert decodes every record of src under s and writes it to dst with dst's format. When the
// schema has a header, the first input record is discarded and the column names are written in
// its place. The first decode or encode error cancels both sides and is returned.
//
// dst is flushed but not closed.
func Convert(ctx context.Context, src *typedcsv.Reader, dst *typedcsv.Writer, s *schema.Schema, logger *slog.Logger) (Stats, error) {
	var stats Stats
	if s.Header {
		var h schema.Header
		if _, err := src.ReadIntoContext(ctx, &h); err != nil && err != io.EOF {
			return stats, fmt.Errorf("failed to read header: %w", err)
		}
		if err := typedcsv.RecordsTo[schema.Header](dst).Write(schema.Header(s.Names())); err != nil {
			return stats, fmt.Errorf("failed to write header: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	rows := make(chan *schema.Row, queueSize)

	g.Go(func() error {
		defer close(rows)
		for {
			row := s.NewRow()
			ok, err := src.ReadIntoContext(ctx, row)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("line %d: %w", src.Line(), err)
			}
			if !ok {
				return fmt.Errorf("line %d: %w", src.Line(), typedcsv.ErrMalformedRecord)
			}
			select {
			case rows <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		out := typedcsv.RecordsTo[*schema.Row](dst)
		for row := range rows {
			if err := out.Write(row); err != nil {
				return fmt.Errorf("record %d: %w", stats.Records+1, err)
			}
			stats.Records++
		}
		return out.Flush()
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}
	logger.Debug("conversion finished", "records", stats.Records)
	return stats, nil
}

// Summary describes the shape of a file without typing its fields.
type Summary struct {
	Records   int
	MinFields int
	MaxFields int
	// Bytes counts field bytes, excluding separators and newlines.
	Bytes int64
}

// shape counts the fields of one record.
type shape struct {
	fields int
	bytes  int
}

func (sh *shape) UnmarshalCSV(r *typedcsv.Reader, f *typedcsv.Fields) (bool, error) {
	for f.Next() {
		sh.fields++
		sh.bytes += len(f.Bytes())
	}
	return true, nil
}

// Scan walks every record of src and reports its shape.
func Scan(ctx context.Context, src *typedcsv.Reader) (Summary, error) {
	var sum Summary
	for rec, err := range typedcsv.RecordsFrom[shape](src).AllContext(ctx) {
		if err != nil {
			return sum, err
		}
		if sum.Records == 0 || rec.fields < sum.MinFields {
			sum.MinFields = rec.fields
		}
		sum.MaxFields = max(sum.MaxFields, rec.fields)
		sum.Bytes += int64(rec.bytes)
		sum.Records++
	}
	return sum, nil
}
