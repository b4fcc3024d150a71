// # TypedCSV: Streaming Typed Codec for Delimited Text
//
// TypedCSV reads and writes delimited-text records (CSV-like data) as typed Go values.
// Input is consumed incrementally through a growable window, so records of any size are
// handled without loading the whole stream, and fields are converted straight from the
// buffered bytes into integers, floats, decimals, big integers, calendar values and text
// under a locale-derived FormatConfig.
//
// # Features
//
// - Streaming Reader with a doubling/compacting window and blocking or context-aware reads.
// - Record codecs (`Unmarshaler`, `Marshaler`) populate and emit caller-defined record types.
// - Try/must field parsers for every supported type, with number-style and locale overrides.
// - Closed-set generic dispatch (`TryRead`, `Read`, `Write`) checked by the type system.
// - Buffered Writer formatting values directly into its buffer, with file and compression helpers.
//
// # Limitations
//
// Records are split on raw newline bytes and fields on the raw separator rune. Quoting and
// escaping (RFC 4180) are not interpreted, and a carriage return before a newline stays in
// the last field of the record. Number styles that allow trailing whitespace tolerate it.
//
// # Borrowed views
//
// Field bytes returned by Fields.Bytes and Reader.TryReadBytes alias the reader's buffer and
// are only valid until the next call that advances the reader. Copy what must be retained.
package typedcsv
